package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "recipebook-backend/internal/domains/catalog/model"
	"recipebook-backend/internal/domains/shoppinglist/model"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
)

type fakeRepository struct {
	lines []model.CartLine
}

func (f *fakeRepository) CartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	return f.lines, nil
}

func TestBuildListRequiresAuthentication(t *testing.T) {
	svc := NewShoppingListService(&fakeRepository{})

	_, err := svc.BuildList(context.Background(), shared.Anonymous())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
}

func TestBuildListSumsByIngredient(t *testing.T) {
	flourID := uuid.New()
	eggID := uuid.New()
	saltID := uuid.New()

	// Two recipes sharing flour; eggs and salt appear once each.
	repo := &fakeRepository{lines: []model.CartLine{
		{IngredientID: flourID, Name: "flour", Amount: 300, MeasurementUnit: catalogModel.UnitGram},
		{IngredientID: eggID, Name: "egg", Amount: 2, MeasurementUnit: catalogModel.UnitPiece},
		{IngredientID: flourID, Name: "flour", Amount: 200, MeasurementUnit: catalogModel.UnitGram},
		{IngredientID: saltID, Name: "salt", Amount: 1, MeasurementUnit: catalogModel.UnitTeaspoon},
	}}
	svc := NewShoppingListService(repo)

	rows, err := svc.BuildList(context.Background(), shared.Authenticated(uuid.New()))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, model.ShoppingListRow{IngredientID: flourID, Name: "flour", TotalAmount: 500, Unit: "g"}, rows[0])
	assert.Equal(t, model.ShoppingListRow{IngredientID: eggID, Name: "egg", TotalAmount: 2, Unit: "pcs"}, rows[1])
	assert.Equal(t, model.ShoppingListRow{IngredientID: saltID, Name: "salt", TotalAmount: 1, Unit: "tsp"}, rows[2])
}

func TestBuildListKeepsSameNameDifferentIngredientsSeparate(t *testing.T) {
	// Two distinct catalog entries may share a display name; they are
	// still different ingredients and must not merge.
	firstID := uuid.New()
	secondID := uuid.New()

	repo := &fakeRepository{lines: []model.CartLine{
		{IngredientID: firstID, Name: "pepper", Amount: 1, MeasurementUnit: catalogModel.UnitTeaspoon},
		{IngredientID: secondID, Name: "pepper", Amount: 2, MeasurementUnit: catalogModel.UnitPiece},
	}}
	svc := NewShoppingListService(repo)

	rows, err := svc.BuildList(context.Background(), shared.Authenticated(uuid.New()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].TotalAmount)
	assert.Equal(t, 2, rows[1].TotalAmount)
}

func TestBuildListEmptyCart(t *testing.T) {
	svc := NewShoppingListService(&fakeRepository{})

	rows, err := svc.BuildList(context.Background(), shared.Authenticated(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
