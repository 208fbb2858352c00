package handlers

import (
	"context"

	"github.com/crucial707/movies-api/internal/models"
)

// UserStore is the credential store used by AuthHandler.
type UserStore interface {
	Create(ctx context.Context, name, username, password string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// MovieStore is the movie repository used by MovieHandler.
type MovieStore interface {
	List(ctx context.Context) ([]models.Movie, error)
	FindByTitle(ctx context.Context, title string) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	DeleteByTitle(ctx context.Context, title string) (bool, error)
	UpdateByID(ctx context.Context, id string, update *models.MovieUpdate) (*models.Movie, error)
}

// AuditStore records and lists movie mutations.
type AuditStore interface {
	Log(ctx context.Context, entry models.AuditEntry) error
	List(ctx context.Context) ([]models.AuditEntry, error)
}
