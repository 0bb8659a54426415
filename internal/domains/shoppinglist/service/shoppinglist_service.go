package service

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/shoppinglist/model"
	"recipebook-backend/internal/domains/shoppinglist/repository"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
)

type ServiceInterface interface {
	// BuildList aggregates the caller's cart into one row per
	// ingredient with summed amounts.
	BuildList(ctx context.Context, caller shared.Identity) ([]model.ShoppingListRow, error)
}

type ShoppingListService struct {
	repository repository.RepositoryInterface
}

func NewShoppingListService(r repository.RepositoryInterface) ServiceInterface {
	return &ShoppingListService{repository: r}
}

func (s *ShoppingListService) BuildList(ctx context.Context, caller shared.Identity) ([]model.ShoppingListRow, error) {
	if !caller.Authenticated {
		return nil, apperror.Permission("authentication required")
	}

	lines, err := s.repository.CartLines(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	// Merge by ingredient identity, not by name: two ingredients that
	// happen to share a name stay separate rows. Rows keep first-seen
	// order.
	index := make(map[uuid.UUID]int, len(lines))
	rows := make([]model.ShoppingListRow, 0, len(lines))
	for _, line := range lines {
		if i, ok := index[line.IngredientID]; ok {
			rows[i].TotalAmount += line.Amount
			continue
		}
		index[line.IngredientID] = len(rows)
		rows = append(rows, model.ShoppingListRow{
			IngredientID: line.IngredientID,
			Name:         line.Name,
			TotalAmount:  line.Amount,
			Unit:         line.MeasurementUnit.Label(),
		})
	}

	return rows, nil
}
