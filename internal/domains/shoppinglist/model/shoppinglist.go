package model

import (
	"github.com/google/uuid"

	catalogModel "recipebook-backend/internal/domains/catalog/model"
)

// CartLine is one raw ingredient line drawn from a recipe in the
// user's cart. The same ingredient appears once per recipe that uses
// it; aggregation happens in the service.
type CartLine struct {
	IngredientID    uuid.UUID
	Name            string
	Amount          int
	MeasurementUnit catalogModel.MeasurementUnit
}

// ShoppingListRow is one aggregated output row. Unit is the display
// label, not the stored unit code.
type ShoppingListRow struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	TotalAmount  int       `json:"total_amount"`
	Unit         string    `json:"unit"`
}
