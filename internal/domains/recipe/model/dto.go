package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	catalogModel "recipebook-backend/internal/domains/catalog/model"
)

// IngredientLineInput references an ingredient by id with an amount.
type IngredientLineInput struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

func (l IngredientLineInput) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
		validation.Field(&l.Amount, validation.Required, validation.Min(1)),
	)
}

// CreateRecipeRequest is the full write payload. Validate reports every
// violated field at once.
type CreateRecipeRequest struct {
	Name        string                `json:"name"`
	Text        string                `json:"text"`
	CookingTime int                   `json:"cooking_time"`
	Image       string                `json:"image"` // base64 payload
	Ingredients []IngredientLineInput `json:"ingredients"`
	Tags        []uuid.UUID           `json:"tags"`
}

func (req CreateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Text, validation.Required),
		validation.Field(&req.CookingTime, validation.Required, validation.Min(1)),
		validation.Field(&req.Image, validation.Required),
		validation.Field(&req.Ingredients, validation.Required, validation.Length(1, 0), validation.By(uniqueLineIDs)),
		validation.Field(&req.Tags, validation.Required, validation.Length(1, 0), validation.By(uniqueTagIDs)),
	)
}

// uniqueLineIDs rejects payloads naming the same ingredient twice; each
// line must reference a distinct ingredient.
func uniqueLineIDs(value interface{}) error {
	lines, _ := value.([]IngredientLineInput)
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ID]; ok {
			return validation.NewError("validation_duplicate", "ingredient ids must be unique")
		}
		seen[line.ID] = struct{}{}
	}
	return nil
}

func uniqueTagIDs(value interface{}) error {
	tags, _ := value.([]uuid.UUID)
	seen := make(map[uuid.UUID]struct{}, len(tags))
	for _, id := range tags {
		if _, ok := seen[id]; ok {
			return validation.NewError("validation_duplicate", "tag ids must be unique")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// UpdateRecipeRequest carries only the fields to change. Nil pointers
// and nil slices keep the prior values; non-nil Ingredients/Tags
// replace the full association set.
type UpdateRecipeRequest struct {
	Name        *string               `json:"name"`
	Text        *string               `json:"text"`
	CookingTime *int                  `json:"cooking_time"`
	Image       *string               `json:"image"`
	Ingredients []IngredientLineInput `json:"ingredients"`
	Tags        []uuid.UUID           `json:"tags"`
}

func (req UpdateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 64)),
		validation.Field(&req.Text, validation.NilOrNotEmpty),
		validation.Field(&req.CookingTime, validation.By(func(value interface{}) error {
			v, _ := value.(*int)
			if v != nil && *v < 1 {
				return validation.NewError("validation_min", "must be no less than 1")
			}
			return nil
		})),
		validation.Field(&req.Ingredients, validation.By(func(value interface{}) error {
			lines, _ := value.([]IngredientLineInput)
			if lines != nil && len(lines) == 0 {
				return validation.NewError("validation_empty_set", "replacement set cannot be empty")
			}
			return nil
		}), validation.By(uniqueLineIDs)),
		validation.Field(&req.Tags, validation.By(func(value interface{}) error {
			tags, _ := value.([]uuid.UUID)
			if tags != nil && len(tags) == 0 {
				return validation.NewError("validation_empty_set", "replacement set cannot be empty")
			}
			return nil
		}), validation.By(uniqueTagIDs)),
	)
}

// ListRecipesRequest is the query-side filter. Filters compose with
// logical AND; unset favorited/cart flags mean "don't filter".
type ListRecipesRequest struct {
	Tags        []string `form:"tags"`
	Author      string   `form:"author"`
	IsFavorited *bool    `form:"is_favorited"`
	IsInCart    *bool    `form:"is_in_shopping_cart"`
	Page        int      `form:"page"`
	Limit       int      `form:"limit"`
}

func (req *ListRecipesRequest) Normalize() {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
}

// RecipeFilter is the resolved repository-level filter. FavoritedBy and
// InCartOf are nil unless the corresponding flag was set to true by an
// authenticated caller.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Page        int
	Limit       int
}

// IngredientLineResponse attaches the unit display label.
type IngredientLineResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Amount          int       `json:"amount"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeResponse is the full read projection.
type RecipeResponse struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	CookingTime int                      `json:"cooking_time"`
	Author      AuthorSummary            `json:"author"`
	Ingredients []IngredientLineResponse `json:"ingredients"`
	Tags        []catalogModel.Tag       `json:"tags"`
	Image       string                   `json:"image"`
	Text        string                   `json:"text"`
	IsFavorited bool                     `json:"is_favorited"`
	IsInCart    bool                     `json:"is_in_shopping_cart"`
	CreatedAt   time.Time                `json:"created_at"`
}

// RecipeSummary is the short projection used by subscription listings
// and toggle responses.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// NewRecipeResponse assembles the read projection from a loaded detail.
func NewRecipeResponse(d *RecipeDetail, imageURL string, isFavorited, isInCart bool) RecipeResponse {
	lines := make([]IngredientLineResponse, 0, len(d.Lines))
	for _, line := range d.Lines {
		lines = append(lines, IngredientLineResponse{
			ID:              line.IngredientID,
			Name:            line.Name,
			Amount:          line.Amount,
			MeasurementUnit: line.MeasurementUnit.Label(),
		})
	}

	return RecipeResponse{
		ID:          d.ID,
		Name:        d.Name,
		CookingTime: d.CookingTime,
		Author:      d.Author,
		Ingredients: lines,
		Tags:        d.Tags,
		Image:       imageURL,
		Text:        d.Text,
		IsFavorited: isFavorited,
		IsInCart:    isInCart,
		CreatedAt:   d.CreatedAt,
	}
}
