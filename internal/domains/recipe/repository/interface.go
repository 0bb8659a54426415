package repository

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/recipe/model"
)

// RelationFlags carries the caller-specific read flags for one recipe.
type RelationFlags struct {
	Favorited bool
	InCart    bool
}

type RepositoryInterface interface {
	// Create persists the recipe with its ingredient lines and tag
	// links in one transaction.
	Create(ctx context.Context, recipe *model.Recipe, lines []model.IngredientLine, tagIDs []uuid.UUID) error

	// Update writes the changed recipe fields. A non-nil lines or
	// tagIDs slice replaces the full association set (delete all,
	// insert new) inside the same transaction.
	Update(ctx context.Context, recipe *model.Recipe, lines []model.IngredientLine, tagIDs []uuid.UUID) error

	// Delete removes the recipe; the store cascades its lines, tag
	// links, favorites and cart items.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID loads the full aggregate, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error)

	// List returns aggregates matching the filter ordered newest
	// first, plus the unpaginated total.
	List(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeDetail, int, error)

	// MissingIngredientIDs returns the subset of ids with no matching
	// ingredient record.
	MissingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// MissingTagIDs returns the subset of ids with no matching tag.
	MissingTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// Flags reports, for each recipe id, whether the user has
	// favorited it or put it in their cart.
	Flags(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]RelationFlags, error)
}
