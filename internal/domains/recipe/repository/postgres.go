package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	catalogModel "recipebook-backend/internal/domains/catalog/model"
	"recipebook-backend/internal/domains/recipe/model"
	"recipebook-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, recipe *model.Recipe, lines []model.IngredientLine, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO recipes (id, author_id, name, image_key, text, cooking_time, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		_, err := tx.Exec(ctx, query,
			recipe.ID,
			recipe.AuthorID,
			recipe.Name,
			recipe.ImageKey,
			recipe.Text,
			recipe.CookingTime,
			recipe.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		if err := insertLines(ctx, tx, recipe.ID, lines); err != nil {
			return err
		}
		return insertTagLinks(ctx, tx, recipe.ID, tagIDs)
	})
}

func (r *postgresRepository) Update(ctx context.Context, recipe *model.Recipe, lines []model.IngredientLine, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE recipes
			SET name = $2, image_key = $3, text = $4, cooking_time = $5
			WHERE id = $1
		`

		_, err := tx.Exec(ctx, query,
			recipe.ID,
			recipe.Name,
			recipe.ImageKey,
			recipe.Text,
			recipe.CookingTime,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		// Replace-set semantics: discard every existing link before
		// inserting the new set.
		if lines != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
				return fmt.Errorf("failed to clear ingredient lines: %w", err)
			}
			if err := insertLines(ctx, tx, recipe.ID, lines); err != nil {
				return err
			}
		}

		if tagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
				return fmt.Errorf("failed to clear tag links: %w", err)
			}
			if err := insertTagLinks(ctx, tx, recipe.ID, tagIDs); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertLines(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, lines []model.IngredientLine) error {
	query := `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		VALUES ($1, $2, $3)
	`

	for _, line := range lines {
		if _, err := tx.Exec(ctx, query, recipeID, line.IngredientID, line.Amount); err != nil {
			return fmt.Errorf("failed to insert ingredient line: %w", err)
		}
	}
	return nil
}

func insertTagLinks(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	query := `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		VALUES ($1, $2)
	`

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, query, recipeID, tagID); err != nil {
			return fmt.Errorf("failed to insert tag link: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Lines, tag links, favorites and cart items go with the recipe
	// via ON DELETE CASCADE.
	_, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error) {
	query := `
		SELECT
			r.id, r.author_id, r.name, r.image_key, r.text, r.cooking_time, r.created_at,
			u.username, u.first_name, u.last_name
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1
	`

	var detail model.RecipeDetail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.AuthorID,
		&detail.Name,
		&detail.ImageKey,
		&detail.Text,
		&detail.CookingTime,
		&detail.CreatedAt,
		&detail.Author.Username,
		&detail.Author.FirstName,
		&detail.Author.LastName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	detail.Author.ID = detail.AuthorID

	details := []model.RecipeDetail{detail}
	if err := r.attachAssociations(ctx, details); err != nil {
		return nil, err
	}

	return &details[0], nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeDetail, int, error) {
	where := `
		($1::uuid IS NULL OR r.author_id = $1)
		AND (cardinality($2::text[]) = 0 OR EXISTS (
			SELECT 1 FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY($2)))
		AND ($3::uuid IS NULL OR EXISTS (
			SELECT 1 FROM favorites f
			WHERE f.recipe_id = r.id AND f.user_id = $3))
		AND ($4::uuid IS NULL OR EXISTS (
			SELECT 1 FROM cart_items ci
			WHERE ci.recipe_id = r.id AND ci.user_id = $4))
	`

	tagSlugs := filter.TagSlugs
	if tagSlugs == nil {
		tagSlugs = []string{}
	}

	countQuery := `SELECT COUNT(*) FROM recipes r WHERE ` + where
	var total int
	err := r.pool.QueryRow(ctx, countQuery,
		filter.AuthorID, tagSlugs, filter.FavoritedBy, filter.InCartOf,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	// UUID keys are not ordered by creation; created_at DESC is the
	// "most recent first" ordering with id as a stable tiebreaker.
	query := `
		SELECT
			r.id, r.author_id, r.name, r.image_key, r.text, r.cooking_time, r.created_at,
			u.username, u.first_name, u.last_name
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE ` + where + `
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $5 OFFSET $6
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx, query,
		filter.AuthorID, tagSlugs, filter.FavoritedBy, filter.InCartOf,
		filter.Limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var details []model.RecipeDetail
	for rows.Next() {
		var detail model.RecipeDetail
		err := rows.Scan(
			&detail.ID,
			&detail.AuthorID,
			&detail.Name,
			&detail.ImageKey,
			&detail.Text,
			&detail.CookingTime,
			&detail.CreatedAt,
			&detail.Author.Username,
			&detail.Author.FirstName,
			&detail.Author.LastName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipe: %w", err)
		}
		detail.Author.ID = detail.AuthorID
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating recipes: %w", err)
	}

	if err := r.attachAssociations(ctx, details); err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

// attachAssociations loads ingredient lines and tags for the given
// recipes in two queries and distributes them in memory.
func (r *postgresRepository) attachAssociations(ctx context.Context, details []model.RecipeDetail) error {
	if len(details) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(details))
	index := make(map[uuid.UUID]*model.RecipeDetail, len(details))
	for i := range details {
		ids = append(ids, details[i].ID)
		index[details[i].ID] = &details[i]
	}

	lineQuery := `
		SELECT ri.recipe_id, ri.ingredient_id, ri.amount, i.name, i.measurement_unit
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY ri.id
	`

	rows, err := r.pool.Query(ctx, lineQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to query ingredient lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID uuid.UUID
		var line model.IngredientLineDetail
		if err := rows.Scan(&recipeID, &line.IngredientID, &line.Amount, &line.Name, &line.MeasurementUnit); err != nil {
			return fmt.Errorf("failed to scan ingredient line: %w", err)
		}
		if detail, ok := index[recipeID]; ok {
			detail.Lines = append(detail.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating ingredient lines: %w", err)
	}

	tagQuery := `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug, t.created_at
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.name
	`

	tagRows, err := r.pool.Query(ctx, tagQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to query tag links: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var recipeID uuid.UUID
		var tag catalogModel.Tag
		if err := tagRows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.Color, &tag.Slug, &tag.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan tag link: %w", err)
		}
		if detail, ok := index[recipeID]; ok {
			detail.Tags = append(detail.Tags, tag)
		}
	}
	return tagRows.Err()
}

func (r *postgresRepository) MissingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.missingIDs(ctx, "ingredients", ids)
}

func (r *postgresRepository) MissingTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.missingIDs(ctx, "tags", ids)
}

func (r *postgresRepository) missingIDs(ctx context.Context, table string, ids []uuid.UUID) ([]uuid.UUID, error) {
	query := fmt.Sprintf(`
		SELECT x.id
		FROM unnest($1::uuid[]) AS x(id)
		WHERE NOT EXISTS (SELECT 1 FROM %s t WHERE t.id = x.id)
	`, table)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s ids: %w", table, err)
	}
	defer rows.Close()

	var missing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		missing = append(missing, id)
	}

	return missing, rows.Err()
}

func (r *postgresRepository) Flags(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]RelationFlags, error) {
	flags := make(map[uuid.UUID]RelationFlags, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return flags, nil
	}

	query := `
		SELECT recipe_id, 'favorite' AS kind FROM favorites
		WHERE user_id = $1 AND recipe_id = ANY($2)
		UNION ALL
		SELECT recipe_id, 'cart' AS kind FROM cart_items
		WHERE user_id = $1 AND recipe_id = ANY($2)
	`

	rows, err := r.pool.Query(ctx, query, userID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query relation flags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID uuid.UUID
		var kind string
		if err := rows.Scan(&recipeID, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan relation flag: %w", err)
		}
		f := flags[recipeID]
		switch kind {
		case "favorite":
			f.Favorited = true
		case "cart":
			f.InCart = true
		}
		flags[recipeID] = f
	}

	return flags, rows.Err()
}
