package db

import (
	"context"
	"database/sql"
	"time"
)

// Column describes one column reported by PRAGMA table_info.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EmailMigrationReport describes what EnsureUserEmail changed.
type EmailMigrationReport struct {
	ColumnAdded  bool     `json:"column_added"`
	IndexEnsured bool     `json:"index_ensured"`
	Columns      []Column `json:"columns"`
}

// EnsureUserEmail upgrades a users table created before the email column existed.
// It adds a nullable email column when missing and ensures the unique index on it.
// Creating the index fails if the table already holds duplicate emails.
func EnsureUserEmail(ctx context.Context, d *sql.DB) (*EmailMigrationReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rep := &EmailMigrationReport{}
	cols, err := tableColumns(ctx, d, "users")
	if err != nil {
		return nil, err
	}
	hasEmail := false
	for _, c := range cols {
		if c.Name == "email" {
			hasEmail = true
			break
		}
	}
	if !hasEmail {
		if _, err := d.ExecContext(ctx, `ALTER TABLE users ADD COLUMN email TEXT`); err != nil {
			return nil, err
		}
		rep.ColumnAdded = true
	}
	if _, err := d.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email COLLATE NOCASE)`); err != nil {
		return rep, err
	}
	rep.IndexEnsured = true

	rep.Columns, err = tableColumns(ctx, d, "users")
	if err != nil {
		return rep, err
	}
	return rep, nil
}

func tableColumns(ctx context.Context, d *sql.DB, table string) ([]Column, error) {
	rows, err := d.QueryContext(ctx, `PRAGMA table_info(`+table+`)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Column
	for rows.Next() {
		var (
			cid     int
			c       Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &c.Name, &c.Type, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
