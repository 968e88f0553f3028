package models

// Director maps to the `directors` table.
// Nationality and BirthYear are nullable; use pointers to distinguish null vs zero.
type Director struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Nationality *string `db:"nationality" json:"nationality"`
	BirthYear   *int    `db:"birth_year" json:"birth_year"`
}
