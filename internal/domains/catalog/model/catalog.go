package model

import (
	"time"

	"github.com/google/uuid"
)

// Tag is an immutable recipe category reference record.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // "#RRGGBB"
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// MeasurementUnit is the fixed set of ingredient units.
type MeasurementUnit string

const (
	UnitKilogram   MeasurementUnit = "kilogram"
	UnitGram       MeasurementUnit = "gram"
	UnitMilliliter MeasurementUnit = "milliliter"
	UnitLiter      MeasurementUnit = "liter"
	UnitToTaste    MeasurementUnit = "to_taste"
	UnitPiece      MeasurementUnit = "piece"
	UnitTeaspoon   MeasurementUnit = "teaspoon"
	UnitTablespoon MeasurementUnit = "tablespoon"
	UnitPinch      MeasurementUnit = "pinch"
)

// AllMeasurementUnits lists every valid unit, in display order.
var AllMeasurementUnits = []MeasurementUnit{
	UnitKilogram,
	UnitGram,
	UnitMilliliter,
	UnitLiter,
	UnitToTaste,
	UnitPiece,
	UnitTeaspoon,
	UnitTablespoon,
	UnitPinch,
}

var unitLabels = map[MeasurementUnit]string{
	UnitKilogram:   "kg",
	UnitGram:       "g",
	UnitMilliliter: "ml",
	UnitLiter:      "l",
	UnitToTaste:    "to taste",
	UnitPiece:      "pcs",
	UnitTeaspoon:   "tsp",
	UnitTablespoon: "tbsp",
	UnitPinch:      "pinch",
}

// IsValid reports whether u belongs to the fixed unit set.
func (u MeasurementUnit) IsValid() bool {
	_, ok := unitLabels[u]
	return ok
}

// Label returns the human-readable unit label ("kg", "tsp", ...).
func (u MeasurementUnit) Label() string {
	if label, ok := unitLabels[u]; ok {
		return label
	}
	return string(u)
}

// Ingredient is an immutable ingredient reference record.
type Ingredient struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	MeasurementUnit MeasurementUnit `json:"measurement_unit"`
	CreatedAt       time.Time       `json:"created_at"`
}
