package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"movieCatalog/internal/auth"
	"movieCatalog/models"
)

// SeedOptions configures the seeded admin account.
type SeedOptions struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// DefaultSeedOptions returns the admin account inserted into an empty users table.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		AdminUsername: "admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
	}
}

// SeedReport lists the tables that received seed rows.
type SeedReport struct {
	Movies    bool
	Directors bool
	Users     bool
}

var seedMovies = []models.Movie{
	{Title: "Parasite", Director: "Bong Joon-ho", Year: 2019},
	{Title: "The Dark Knight", Director: "Christopher Nolan", Year: 2008},
}

var seedDirectors = []struct {
	name        string
	nationality string
	birthYear   int
}{
	{"Bong Joon-ho", "South Korean", 1969},
	{"Christopher Nolan", "British-American", 1970},
}

// Seed inserts the fixed seed dataset into every table that is empty.
// Tables that already hold rows are left untouched.
func Seed(ctx context.Context, d *sql.DB, opts SeedOptions) (SeedReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var rep SeedReport
	var err error

	rep.Movies, err = seedIfEmpty(ctx, d, "movies", func(tx *sql.Tx) error {
		for _, m := range seedMovies {
			if _, err := tx.ExecContext(ctx, `INSERT INTO movies (title, director, year) VALUES (?,?,?)`, m.Title, m.Director, m.Year); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return rep, err
	}

	rep.Directors, err = seedIfEmpty(ctx, d, "directors", func(tx *sql.Tx) error {
		for _, s := range seedDirectors {
			if _, err := tx.ExecContext(ctx, `INSERT INTO directors (name, nationality, birth_year) VALUES (?,?,?)`, s.name, s.nationality, s.birthYear); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return rep, err
	}

	rep.Users, err = seedIfEmpty(ctx, d, "users", func(tx *sql.Tx) error {
		hash, err := auth.HashPassword(opts.AdminPassword)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO users (username, email, password, role) VALUES (?,?,?,?)`,
			opts.AdminUsername, opts.AdminEmail, hash, string(models.RoleAdmin))
		return err
	})
	return rep, err
}

// seedIfEmpty runs insert in a transaction when table has no rows.
func seedIfEmpty(ctx context.Context, d *sql.DB, table string, insert func(tx *sql.Tx) error) (bool, error) {
	var count int
	if err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	if count > 0 {
		return false, nil
	}
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	if err := insert(tx); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("seed %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed %s: %w", table, err)
	}
	return true, nil
}
