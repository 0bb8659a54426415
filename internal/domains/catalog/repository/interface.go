package repository

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/catalog/model"
)

type RepositoryInterface interface {
	// CreateTag inserts a tag; duplicate name/color/slug surfaces as a
	// duplicate-relation error.
	CreateTag(ctx context.Context, tag *model.Tag) error

	// GetTagByID gets one tag.
	GetTagByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)

	// ListTags lists all tags ordered by name.
	ListTags(ctx context.Context) ([]model.Tag, error)

	// CreateIngredient inserts an ingredient; duplicate name surfaces
	// as a duplicate-relation error.
	CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error

	// GetIngredientByID gets one ingredient.
	GetIngredientByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)

	// ListIngredients lists ingredients ordered by name, optionally
	// narrowed by a case-insensitive name substring.
	ListIngredients(ctx context.Context, nameFilter string) ([]model.Ingredient, error)
}
