package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"movieCatalog/internal/auth"
	"movieCatalog/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create hashes the plaintext password and inserts the user.
// Role defaults to 'user'. A taken username or email, compared without
// regard to case, yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, nu models.NewUser) (*models.User, error) {
	if strings.TrimSpace(nu.Username) == "" || strings.TrimSpace(nu.Email) == "" {
		return nil, errors.New("username and email are required")
	}
	if nu.Role == "" {
		nu.Role = models.RoleUser
	}
	if !nu.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", nu.Role)
	}
	hash, err := auth.HashPassword(nu.Password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, email, password, role) VALUES (?,?,?,?)`,
		nu.Username, nu.Email, hash, string(nu.Role))
	if err != nil {
		if mapped := mapConstraint(err); errors.Is(mapped, ErrDuplicate) {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: nu.Username, Email: nu.Email, PasswordHash: hash, Role: nu.Role}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

// GetByUsername returns the user including its password hash, for credential checks.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `username = ? COLLATE NOCASE`, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `email = ? COLLATE NOCASE`, email)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		u     models.User
		email sql.NullString
		role  string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, username, email, password, role FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Email = email.String
	u.Role = models.Role(role)
	return &u, nil
}

// List returns every user ordered by id. The password column is never selected.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, email, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		var (
			u     models.User
			email sql.NullString
			role  string
		)
		if err := rows.Scan(&u.ID, &u.Username, &email, &role); err != nil {
			return nil, err
		}
		u.Email = email.String
		u.Role = models.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
