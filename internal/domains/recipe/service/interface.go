package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"recipebook-backend/internal/domains/recipe/model"
	"recipebook-backend/internal/shared"
)

// ImageStorage is the binary-storage collaborator. The service only
// handles opaque keys and URLs.
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	URL(key string) string
}

// ImageDecoder turns a caller-supplied base64 payload into normalized
// image bytes.
type ImageDecoder interface {
	DecodeBase64(payload string) ([]byte, error)
	Validate(data []byte) error
	Normalize(data []byte) ([]byte, error)
}

// TaskEnqueuer submits background tasks. Satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ServiceInterface interface {
	CreateRecipe(ctx context.Context, author shared.Identity, req *model.CreateRecipeRequest) (*model.RecipeResponse, error)
	GetRecipe(ctx context.Context, caller shared.Identity, id uuid.UUID) (*model.RecipeResponse, error)
	ListRecipes(ctx context.Context, caller shared.Identity, req *model.ListRecipesRequest) ([]model.RecipeResponse, int, error)
	UpdateRecipe(ctx context.Context, requester shared.Identity, id uuid.UUID, req *model.UpdateRecipeRequest) (*model.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, requester shared.Identity, id uuid.UUID) error
}
