package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementUnitIsValid(t *testing.T) {
	for _, unit := range AllMeasurementUnits {
		assert.True(t, unit.IsValid(), "unit %q should be valid", unit)
	}

	assert.False(t, MeasurementUnit("cup").IsValid())
	assert.False(t, MeasurementUnit("").IsValid())
}

func TestMeasurementUnitLabel(t *testing.T) {
	assert.Equal(t, "kg", UnitKilogram.Label())
	assert.Equal(t, "to taste", UnitToTaste.Label())
	assert.Equal(t, "pcs", UnitPiece.Label())
	assert.Equal(t, "tbsp", UnitTablespoon.Label())

	// Unknown units fall back to the raw value.
	assert.Equal(t, "cup", MeasurementUnit("cup").Label())
}

func TestCreateTagRequestValidate(t *testing.T) {
	valid := CreateTagRequest{Name: "Breakfast", Color: "#49B64E", Slug: "breakfast"}
	assert.NoError(t, valid.Validate())

	noSlug := CreateTagRequest{Name: "Breakfast", Color: "#49B64E"}
	assert.NoError(t, noSlug.Validate())

	badColors := []string{"49B64E", "#49B64", "#49B64EE", "#49B64G", "green", ""}
	for _, color := range badColors {
		req := CreateTagRequest{Name: "Breakfast", Color: color}
		err := req.Validate()
		require.Error(t, err, "color %q should be rejected", color)

		fields, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, fields, "color")
	}
}

func TestCreateIngredientRequestValidate(t *testing.T) {
	valid := CreateIngredientRequest{Name: "flour", MeasurementUnit: UnitGram}
	assert.NoError(t, valid.Validate())

	badUnit := CreateIngredientRequest{Name: "flour", MeasurementUnit: "cup"}
	err := badUnit.Validate()
	require.Error(t, err)

	fields, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, fields, "measurement_unit")

	empty := CreateIngredientRequest{}
	err = empty.Validate()
	require.Error(t, err)

	fields, ok = err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "measurement_unit")
}
