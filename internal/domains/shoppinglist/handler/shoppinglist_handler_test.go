package handler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook-backend/internal/domains/shoppinglist/model"
)

func TestRenderCSV(t *testing.T) {
	rows := []model.ShoppingListRow{
		{IngredientID: uuid.New(), Name: "flour", TotalAmount: 500, Unit: "g"},
		{IngredientID: uuid.New(), Name: "egg", TotalAmount: 2, Unit: "pcs"},
	}

	data, err := renderCSV(rows)
	require.NoError(t, err)

	assert.Equal(t, "Ingredient,Amount,Unit\nflour,500,g\negg,2,pcs\n", string(data))
}

func TestRenderCSVEmptyListHasHeaderOnly(t *testing.T) {
	data, err := renderCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Ingredient,Amount,Unit\n", string(data))
}
