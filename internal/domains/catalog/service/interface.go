package service

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	CreateTag(ctx context.Context, req *model.CreateTagRequest) (*model.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	ListTags(ctx context.Context) ([]model.Tag, error)

	CreateIngredient(ctx context.Context, req *model.CreateIngredientRequest) (*model.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, req *model.ListIngredientsRequest) ([]model.Ingredient, error)
}
