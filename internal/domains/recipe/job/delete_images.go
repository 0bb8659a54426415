package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"recipebook-backend/internal/shared"
	"recipebook-backend/pkg/logger"
)

// ObjectRemover deletes one object from binary storage.
type ObjectRemover interface {
	Delete(ctx context.Context, key string) error
}

// DeleteImagesHandler removes a deleted recipe's image from storage.
type DeleteImagesHandler struct {
	storage ObjectRemover
}

func NewDeleteImagesHandler(storage ObjectRemover) *DeleteImagesHandler {
	return &DeleteImagesHandler{storage: storage}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.DeleteRecipeImagesPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// A malformed payload never gets better on retry.
		return fmt.Errorf("failed to decode payload: %v: %w", err, asynq.SkipRetry)
	}

	if payload.ImageKey == "" {
		return nil
	}

	if err := h.storage.Delete(ctx, payload.ImageKey); err != nil {
		return fmt.Errorf("failed to delete recipe image %s: %w", payload.ImageKey, err)
	}

	logger.Info("deleted recipe image", map[string]interface{}{
		"recipe_id": payload.RecipeID,
		"image_key": payload.ImageKey,
	})

	return nil
}
