package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movieCatalog/models"
)

type DirectorRepository struct {
	db *sql.DB
}

func NewDirectorRepository(db *sql.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

const directorColumns = `id, name, nationality, birth_year`

// List returns every director ordered by id.
func (r *DirectorRepository) List(ctx context.Context) ([]models.Director, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+directorColumns+` FROM directors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Director{}
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DirectorRepository) GetByID(ctx context.Context, id int64) (*models.Director, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	d, err := scanDirector(r.db.QueryRowContext(ctx, `SELECT `+directorColumns+` FROM directors WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// Create inserts d and returns it with the store-assigned ID.
func (r *DirectorRepository) Create(ctx context.Context, d *models.Director) (*models.Director, error) {
	if d == nil {
		return nil, errors.New("director is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO directors (name, nationality, birth_year) VALUES (?,?,?)`,
		d.Name, nullString(d.Nationality), nullInt(d.BirthYear))
	if err != nil {
		return nil, fmt.Errorf("insert director: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *d
	out.ID = id
	return &out, nil
}

// Update overwrites every field of the director with d.ID; absent optional
// fields are stored as NULL. It returns the number of affected rows.
func (r *DirectorRepository) Update(ctx context.Context, d *models.Director) (int64, error) {
	if d == nil {
		return 0, errors.New("director is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE directors SET name = ?, nationality = ?, birth_year = ? WHERE id = ?`,
		d.Name, nullString(d.Nationality), nullInt(d.BirthYear), d.ID)
	if err != nil {
		return 0, fmt.Errorf("update director %d: %w", d.ID, err)
	}
	return res.RowsAffected()
}

// Delete removes the director and returns the number of affected rows.
func (r *DirectorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM directors WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete director %d: %w", id, err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDirector(s rowScanner) (*models.Director, error) {
	var (
		d           models.Director
		nationality sql.NullString
		birthYear   sql.NullInt64
	)
	if err := s.Scan(&d.ID, &d.Name, &nationality, &birthYear); err != nil {
		return nil, err
	}
	if nationality.Valid {
		v := nationality.String
		d.Nationality = &v
	}
	if birthYear.Valid {
		v := int(birthYear.Int64)
		d.BirthYear = &v
	}
	return &d, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
