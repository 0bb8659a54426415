package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipebook-backend/internal/domains/catalog/model"
	"recipebook-backend/internal/shared/apperror"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateTag(ctx context.Context, tag *model.Tag) error {
	query := `
		INSERT INTO tags (id, name, color, slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, tag.ID, tag.Name, tag.Color, tag.Slug, tag.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Duplicate("tag with the same name, color or slug already exists")
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetTagByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	query := `
		SELECT id, name, color, slug, created_at
		FROM tags
		WHERE id = $1
	`

	var tag model.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tag.ID,
		&tag.Name,
		&tag.Color,
		&tag.Slug,
		&tag.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

func (r *postgresRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	query := `
		SELECT id, name, color, slug, created_at
		FROM tags
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

func (r *postgresRepository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, measurement_unit, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		ingredient.ID,
		ingredient.Name,
		ingredient.MeasurementUnit,
		ingredient.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Duplicate("ingredient with the same name already exists")
		}
		return fmt.Errorf("failed to create ingredient: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetIngredientByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	query := `
		SELECT id, name, measurement_unit, created_at
		FROM ingredients
		WHERE id = $1
	`

	var ingredient model.Ingredient
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ingredient.ID,
		&ingredient.Name,
		&ingredient.MeasurementUnit,
		&ingredient.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}

	return &ingredient, nil
}

// likeEscaper neutralizes LIKE metacharacters so a search for a
// literal "%" or "_" matches only that character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepository) ListIngredients(ctx context.Context, nameFilter string) ([]model.Ingredient, error) {
	query := `
		SELECT id, name, measurement_unit, created_at
		FROM ingredients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, likeEscaper.Replace(nameFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.Ingredient
	for rows.Next() {
		var ingredient model.Ingredient
		err := rows.Scan(
			&ingredient.ID,
			&ingredient.Name,
			&ingredient.MeasurementUnit,
			&ingredient.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}

	return ingredients, nil
}
