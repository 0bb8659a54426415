package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var hexColorPattern = regexp.MustCompile(`^#[A-Fa-f0-9]{6}$`)

// CreateTagRequest seeds a new tag. Slug is derived from the name when
// omitted.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func (req CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Color, validation.Required,
			validation.Match(hexColorPattern).Error("must be a hex color code like #49B64E")),
		validation.Field(&req.Slug, validation.Length(0, 200)),
	)
}

// CreateIngredientRequest seeds a new ingredient.
type CreateIngredientRequest struct {
	Name            string          `json:"name"`
	MeasurementUnit MeasurementUnit `json:"measurement_unit"`
}

func (req CreateIngredientRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.MeasurementUnit, validation.Required,
			validation.By(func(value interface{}) error {
				unit, _ := value.(MeasurementUnit)
				if !unit.IsValid() {
					return validation.NewError("validation_unit", "must be one of the fixed measurement units")
				}
				return nil
			})),
	)
}

// ListIngredientsRequest supports case-insensitive name search.
type ListIngredientsRequest struct {
	Name string `form:"name"`
}

// IngredientResponse exposes the unit as its display label.
type IngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

func NewIngredientResponse(i *Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit.Label(),
	}
}
