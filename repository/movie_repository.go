package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movieCatalog/models"
)

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, title, director, year`

// List returns every movie ordered by id.
func (r *MovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
}

// FindByTitle returns the first movie whose title matches case-insensitively.
func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*models.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE title = ? COLLATE NOCASE ORDER BY id LIMIT 1`, title))
}

// ListByDirector returns the movies of a director, matched case-insensitively.
func (r *MovieRepository) ListByDirector(ctx context.Context, director string) ([]models.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE director = ? COLLATE NOCASE ORDER BY id`, director)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

// Create inserts m and returns it with the store-assigned ID.
func (r *MovieRepository) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	if m == nil {
		return nil, errors.New("movie is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO movies (title, director, year) VALUES (?,?,?)`, m.Title, m.Director, m.Year)
	if err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	return &out, nil
}

// Update overwrites every field of the movie with m.ID.
// It returns the number of affected rows; zero means no such movie.
func (r *MovieRepository) Update(ctx context.Context, m *models.Movie) (int64, error) {
	if m == nil {
		return 0, errors.New("movie is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE movies SET title = ?, director = ?, year = ? WHERE id = ?`, m.Title, m.Director, m.Year, m.ID)
	if err != nil {
		return 0, fmt.Errorf("update movie %d: %w", m.ID, err)
	}
	return res.RowsAffected()
}

// Delete removes the movie and returns the number of affected rows.
func (r *MovieRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete movie %d: %w", id, err)
	}
	return res.RowsAffected()
}

func scanMovie(row *sql.Row) (*models.Movie, error) {
	var m models.Movie
	if err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func scanMovies(rows *sql.Rows) ([]models.Movie, error) {
	out := []models.Movie{}
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Year); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
