package model

import (
	"github.com/google/uuid"

	userModel "recipebook-backend/internal/domains/user/model"
)

// RecipeCard is the short recipe projection the relation store reads
// for toggle responses and subscription listings. ImageKey is the raw
// storage key; the service resolves it to a URL.
type RecipeCard struct {
	ID          uuid.UUID
	Name        string
	ImageKey    string
	CookingTime int
}

// SubscribedAuthor pairs an author with a truncated recipe preview and
// the untruncated recipe count.
type SubscribedAuthor struct {
	Author       userModel.User
	Recipes      []RecipeCard
	RecipesCount int
}
