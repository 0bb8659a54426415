package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipebook-backend/internal/domains/relation/model"
	"recipebook-backend/internal/shared/apperror"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.addMark(ctx, "favorites", userID, recipeID, "recipe already favorited")
}

func (r *postgresRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.removeMark(ctx, "favorites", userID, recipeID, "recipe is not favorited")
}

func (r *postgresRepository) AddCartItem(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.addMark(ctx, "cart_items", userID, recipeID, "recipe already in shopping cart")
}

func (r *postgresRepository) RemoveCartItem(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.removeMark(ctx, "cart_items", userID, recipeID, "recipe is not in shopping cart")
}

// addMark covers favorites and cart_items; both tables share the
// (user_id, recipe_id) shape and unique constraint.
func (r *postgresRepository) addMark(ctx context.Context, table string, userID, recipeID uuid.UUID, duplicateMsg string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, recipe_id, created_at)
		VALUES ($1, $2, NOW())
	`, table)

	_, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Duplicate(duplicateMsg)
		}
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return nil
}

func (r *postgresRepository) removeMark(ctx context.Context, table string, userID, recipeID uuid.UUID, missingMsg string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND recipe_id = $2
	`, table)

	tag, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(missingMsg)
	}

	return nil
}

func (r *postgresRepository) AddSubscription(ctx context.Context, userID, authorID uuid.UUID) error {
	query := `
		INSERT INTO subscriptions (user_id, author_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.pool.Exec(ctx, query, userID, authorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Duplicate("already subscribed to this user")
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

func (r *postgresRepository) RemoveSubscription(ctx context.Context, userID, authorID uuid.UUID) error {
	query := `
		DELETE FROM subscriptions
		WHERE user_id = $1 AND author_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("not subscribed to this user")
	}

	return nil
}

func (r *postgresRepository) SubscriptionExists(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE user_id = $1 AND author_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) RecipeCard(ctx context.Context, recipeID uuid.UUID) (*model.RecipeCard, error) {
	query := `
		SELECT id, name, image_key, cooking_time
		FROM recipes
		WHERE id = $1
	`

	var card model.RecipeCard
	err := r.pool.QueryRow(ctx, query, recipeID).Scan(&card.ID, &card.Name, &card.ImageKey, &card.CookingTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe card: %w", err)
	}

	return &card, nil
}

func (r *postgresRepository) AuthorWithRecipes(ctx context.Context, authorID uuid.UUID, recipesLimit int) (*model.SubscribedAuthor, error) {
	query := `
		SELECT id, email, username, first_name, last_name, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`

	var author model.SubscribedAuthor
	err := r.pool.QueryRow(ctx, query, authorID).Scan(
		&author.Author.ID,
		&author.Author.Email,
		&author.Author.Username,
		&author.Author.FirstName,
		&author.Author.LastName,
		&author.Author.PasswordHash,
		&author.Author.Role,
		&author.Author.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	if err := r.attachRecipes(ctx, []*model.SubscribedAuthor{&author}, recipesLimit); err != nil {
		return nil, err
	}

	return &author, nil
}

func (r *postgresRepository) ListSubscriptions(ctx context.Context, userID uuid.UUID, recipesLimit, page, limit int) ([]model.SubscribedAuthor, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	query := `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.role, u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC, u.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var authors []model.SubscribedAuthor
	for rows.Next() {
		var author model.SubscribedAuthor
		err := rows.Scan(
			&author.Author.ID,
			&author.Author.Email,
			&author.Author.Username,
			&author.Author.FirstName,
			&author.Author.LastName,
			&author.Author.PasswordHash,
			&author.Author.Role,
			&author.Author.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	refs := make([]*model.SubscribedAuthor, len(authors))
	for i := range authors {
		refs[i] = &authors[i]
	}
	if err := r.attachRecipes(ctx, refs, recipesLimit); err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// attachRecipes fills the recipe preview (newest first, truncated to
// recipesLimit when positive) and the untruncated count per author.
func (r *postgresRepository) attachRecipes(ctx context.Context, authors []*model.SubscribedAuthor, recipesLimit int) error {
	if len(authors) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(authors))
	byID := make(map[uuid.UUID]*model.SubscribedAuthor, len(authors))
	for _, author := range authors {
		ids = append(ids, author.Author.ID)
		byID[author.Author.ID] = author
		author.Recipes = []model.RecipeCard{}
	}

	countQuery := `
		SELECT author_id, COUNT(*)
		FROM recipes
		WHERE author_id = ANY($1)
		GROUP BY author_id
	`

	countRows, err := r.pool.Query(ctx, countQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to count author recipes: %w", err)
	}
	defer countRows.Close()

	for countRows.Next() {
		var authorID uuid.UUID
		var count int
		if err := countRows.Scan(&authorID, &count); err != nil {
			return fmt.Errorf("failed to scan recipe count: %w", err)
		}
		if author, ok := byID[authorID]; ok {
			author.RecipesCount = count
		}
	}
	if err := countRows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe counts: %w", err)
	}

	// LIMIT NULL is "no limit" in Postgres, so NULLIF turns a zero
	// recipesLimit into an unbounded preview.
	cardQuery := `
		SELECT a.id, r.id, r.name, r.image_key, r.cooking_time
		FROM unnest($1::uuid[]) AS a(id)
		JOIN LATERAL (
			SELECT id, name, image_key, cooking_time
			FROM recipes
			WHERE author_id = a.id
			ORDER BY created_at DESC, id DESC
			LIMIT NULLIF($2, 0)
		) r ON true
	`

	cardRows, err := r.pool.Query(ctx, cardQuery, ids, recipesLimit)
	if err != nil {
		return fmt.Errorf("failed to query author recipes: %w", err)
	}
	defer cardRows.Close()

	for cardRows.Next() {
		var authorID uuid.UUID
		var card model.RecipeCard
		if err := cardRows.Scan(&authorID, &card.ID, &card.Name, &card.ImageKey, &card.CookingTime); err != nil {
			return fmt.Errorf("failed to scan recipe card: %w", err)
		}
		if author, ok := byID[authorID]; ok {
			author.Recipes = append(author.Recipes, card)
		}
	}
	if err := cardRows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe cards: %w", err)
	}

	return nil
}
