package repository

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/shoppinglist/model"
)

type RepositoryInterface interface {
	// CartLines returns every ingredient line of every recipe in the
	// user's cart, unmerged, in stable line order.
	CartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)
}
