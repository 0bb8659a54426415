package shared

import "github.com/google/uuid"

// Identity is the caller identity threaded explicitly through every
// operation that needs it. Anonymous callers carry a zero UserID.
type Identity struct {
	UserID        uuid.UUID
	Authenticated bool
}

// Authenticated builds an identity for a known user.
func Authenticated(userID uuid.UUID) Identity {
	return Identity{UserID: userID, Authenticated: true}
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// Asynq task type names shared between the API and the worker.
const (
	TypeDeleteRecipeImages = "recipe:delete_images"
)

// DeleteRecipeImagesPayload is the payload for TypeDeleteRecipeImages tasks.
type DeleteRecipeImagesPayload struct {
	RecipeID string `json:"recipeId"`
	ImageKey string `json:"imageKey"`
}
