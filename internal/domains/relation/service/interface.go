package service

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/relation/model"
	"recipebook-backend/internal/shared"
)

// ImageURLResolver maps a storage key to a public URL.
type ImageURLResolver interface {
	URL(key string) string
}

type ServiceInterface interface {
	AddFavorite(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) (*model.RecipeCardResponse, error)
	RemoveFavorite(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) error

	AddCartItem(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) (*model.RecipeCardResponse, error)
	RemoveCartItem(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) error

	Subscribe(ctx context.Context, caller shared.Identity, authorID uuid.UUID, recipesLimit int) (*model.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, caller shared.Identity, authorID uuid.UUID) error
	ListSubscriptions(ctx context.Context, caller shared.Identity, req *model.ListSubscriptionsRequest) ([]model.SubscriptionResponse, int, error)
}
