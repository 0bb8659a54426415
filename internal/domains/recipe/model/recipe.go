package model

import (
	"time"

	"github.com/google/uuid"

	catalogModel "recipebook-backend/internal/domains/catalog/model"
)

// Recipe is the aggregate root. Its ingredient lines and tag links are
// one unit of consistency: every write path touches them together,
// inside one transaction.
type Recipe struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Name        string    `json:"name"`
	ImageKey    string    `json:"image_key"`
	Text        string    `json:"text"`
	CookingTime int       `json:"cooking_time"` // minutes
	CreatedAt   time.Time `json:"created_at"`
}

// IngredientLine joins a recipe to an ingredient with an amount.
type IngredientLine struct {
	RecipeID     uuid.UUID `json:"recipe_id"`
	IngredientID uuid.UUID `json:"ingredient_id"`
	Amount       int       `json:"amount"`
}

// IngredientLineDetail is the read projection of a line with the
// ingredient reference data attached.
type IngredientLineDetail struct {
	IngredientID    uuid.UUID                    `json:"id"`
	Name            string                       `json:"name"`
	Amount          int                          `json:"amount"`
	MeasurementUnit catalogModel.MeasurementUnit `json:"measurement_unit"`
}

// AuthorSummary is the slice of the user record a recipe read carries.
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// RecipeDetail is a fully loaded recipe aggregate.
type RecipeDetail struct {
	Recipe
	Author AuthorSummary          `json:"author"`
	Lines  []IngredientLineDetail `json:"ingredients"`
	Tags   []catalogModel.Tag     `json:"tags"`
}
