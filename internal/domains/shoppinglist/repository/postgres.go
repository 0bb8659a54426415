package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipebook-backend/internal/domains/shoppinglist/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	// Line order follows insertion order of the ingredient lines so
	// the aggregated list comes out deterministic.
	query := `
		SELECT i.id, i.name, ri.amount, i.measurement_unit
		FROM cart_items ci
		JOIN recipe_ingredients ri ON ri.recipe_id = ci.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ri.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.IngredientID, &line.Name, &line.Amount, &line.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}
