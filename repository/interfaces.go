package repository

import (
	"context"

	"movieCatalog/models"
)

// MovieRepositoryI defines operations on Movie entities.
type MovieRepositoryI interface {
	List(ctx context.Context) ([]models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	FindByTitle(ctx context.Context, title string) (*models.Movie, error)
	ListByDirector(ctx context.Context, director string) ([]models.Movie, error)
	Create(ctx context.Context, m *models.Movie) (*models.Movie, error)
	Update(ctx context.Context, m *models.Movie) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// DirectorRepositoryI defines operations on Director entities.
type DirectorRepositoryI interface {
	List(ctx context.Context) ([]models.Director, error)
	GetByID(ctx context.Context, id int64) (*models.Director, error)
	Create(ctx context.Context, d *models.Director) (*models.Director, error)
	Update(ctx context.Context, d *models.Director) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u models.NewUser) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

var (
	_ MovieRepositoryI    = (*MovieRepository)(nil)
	_ DirectorRepositoryI = (*DirectorRepository)(nil)
	_ UserRepositoryI     = (*UserRepository)(nil)
)
