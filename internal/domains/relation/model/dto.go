package model

import (
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type ListSubscriptionsRequest struct {
	RecipesLimit int `form:"recipes_limit"`
	Page         int `form:"page"`
	Limit        int `form:"limit"`
}

// Normalize clamps pagination. RecipesLimit zero means no truncation
// of the per-author recipe preview.
func (req *ListSubscriptionsRequest) Normalize() {
	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.Limit < 1 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	if req.RecipesLimit < 0 {
		req.RecipesLimit = 0
	}
}

// RecipeCardResponse is the short recipe projection with the image
// resolved to a URL.
type RecipeCardResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is an author entry in the caller's subscription
// list. IsSubscribed is always true here: the listing only contains
// authors the caller follows.
type SubscriptionResponse struct {
	ID           uuid.UUID            `json:"id"`
	Email        string               `json:"email"`
	Username     string               `json:"username"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	IsSubscribed bool                 `json:"is_subscribed"`
	Recipes      []RecipeCardResponse `json:"recipes"`
	RecipesCount int                  `json:"recipes_count"`
}

// NewSubscriptionResponse assembles the listing entry; resolveURL maps
// a storage key to a public image URL.
func NewSubscriptionResponse(a *SubscribedAuthor, resolveURL func(string) string) SubscriptionResponse {
	recipes := make([]RecipeCardResponse, 0, len(a.Recipes))
	for _, card := range a.Recipes {
		recipes = append(recipes, NewRecipeCardResponse(card, resolveURL))
	}

	return SubscriptionResponse{
		ID:           a.Author.ID,
		Email:        a.Author.Email,
		Username:     a.Author.Username,
		FirstName:    a.Author.FirstName,
		LastName:     a.Author.LastName,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: a.RecipesCount,
	}
}

func NewRecipeCardResponse(card RecipeCard, resolveURL func(string) string) RecipeCardResponse {
	return RecipeCardResponse{
		ID:          card.ID,
		Name:        card.Name,
		Image:       resolveURL(card.ImageKey),
		CookingTime: card.CookingTime,
	}
}
