package repository

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/user/model"
)

type RepositoryInterface interface {
	// Create inserts a user; duplicate email/username surfaces as a
	// duplicate-relation error.
	Create(ctx context.Context, user *model.User) error

	// GetByID gets a user, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail gets a user by email, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns users ordered by username.
	List(ctx context.Context) ([]model.User, error)
}
