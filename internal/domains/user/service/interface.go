package service

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/user/model"
	"recipebook-backend/internal/shared"
)

// SubscriptionChecker is the narrow view of the relation store the user
// domain needs to compute is_subscribed flags.
type SubscriptionChecker interface {
	SubscriptionExists(ctx context.Context, follower, author uuid.UUID) (bool, error)
}

type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// GetUser returns the public projection of a user with the
	// is_subscribed flag computed for the caller identity.
	GetUser(ctx context.Context, caller shared.Identity, id uuid.UUID) (*model.UserResponse, error)

	// ListUsers returns public projections for every user.
	ListUsers(ctx context.Context, caller shared.Identity) ([]model.UserResponse, error)
}
