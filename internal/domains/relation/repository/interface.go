package repository

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/relation/model"
)

type RepositoryInterface interface {
	// AddFavorite creates the mark; a second add for the same pair
	// fails with a duplicate error.
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error

	// RemoveFavorite deletes the mark; removing an absent mark fails
	// with a not-found error.
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error

	AddCartItem(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveCartItem(ctx context.Context, userID, recipeID uuid.UUID) error

	AddSubscription(ctx context.Context, userID, authorID uuid.UUID) error
	RemoveSubscription(ctx context.Context, userID, authorID uuid.UUID) error

	// SubscriptionExists reports whether userID follows authorID.
	SubscriptionExists(ctx context.Context, userID, authorID uuid.UUID) (bool, error)

	// RecipeCard loads the short recipe projection, nil when absent.
	RecipeCard(ctx context.Context, recipeID uuid.UUID) (*model.RecipeCard, error)

	// AuthorWithRecipes loads one author with a recipe preview of at
	// most recipesLimit entries (zero means all) and the full recipe
	// count. Nil when the user does not exist.
	AuthorWithRecipes(ctx context.Context, authorID uuid.UUID, recipesLimit int) (*model.SubscribedAuthor, error)

	// ListSubscriptions pages through the authors userID follows,
	// newest subscription first, and returns the unpaginated total.
	ListSubscriptions(ctx context.Context, userID uuid.UUID, recipesLimit, page, limit int) ([]model.SubscribedAuthor, int, error)
}
