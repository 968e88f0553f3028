package models

// Movie maps to the `movies` table.
type Movie struct {
	ID       int64  `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	Director string `db:"director" json:"director"`
	Year     int    `db:"year" json:"year"`
}
