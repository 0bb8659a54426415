package service

import (
	"context"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/relation/model"
	"recipebook-backend/internal/domains/relation/repository"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
)

type RelationService struct {
	repository repository.RepositoryInterface
	storage    ImageURLResolver
}

func NewRelationService(r repository.RepositoryInterface, storage ImageURLResolver) ServiceInterface {
	return &RelationService{
		repository: r,
		storage:    storage,
	}
}

func (s *RelationService) AddFavorite(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) (*model.RecipeCardResponse, error) {
	return s.addMark(ctx, caller, recipeID, s.repository.AddFavorite)
}

func (s *RelationService) RemoveFavorite(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) error {
	if !caller.Authenticated {
		return apperror.Permission("authentication required")
	}
	return s.repository.RemoveFavorite(ctx, caller.UserID, recipeID)
}

func (s *RelationService) AddCartItem(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) (*model.RecipeCardResponse, error) {
	return s.addMark(ctx, caller, recipeID, s.repository.AddCartItem)
}

func (s *RelationService) RemoveCartItem(ctx context.Context, caller shared.Identity, recipeID uuid.UUID) error {
	if !caller.Authenticated {
		return apperror.Permission("authentication required")
	}
	return s.repository.RemoveCartItem(ctx, caller.UserID, recipeID)
}

// addMark is the shared toggle-on path: verify the recipe exists, then
// insert the mark. The store reports a second add as a duplicate.
func (s *RelationService) addMark(ctx context.Context, caller shared.Identity, recipeID uuid.UUID, add func(context.Context, uuid.UUID, uuid.UUID) error) (*model.RecipeCardResponse, error) {
	if !caller.Authenticated {
		return nil, apperror.Permission("authentication required")
	}

	card, err := s.repository.RecipeCard(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NotFound("recipe not found")
	}

	if err := add(ctx, caller.UserID, recipeID); err != nil {
		return nil, err
	}

	resp := model.NewRecipeCardResponse(*card, s.storage.URL)
	return &resp, nil
}

func (s *RelationService) Subscribe(ctx context.Context, caller shared.Identity, authorID uuid.UUID, recipesLimit int) (*model.SubscriptionResponse, error) {
	if !caller.Authenticated {
		return nil, apperror.Permission("authentication required")
	}

	// The self check happens before any store access.
	if caller.UserID == authorID {
		return nil, apperror.SelfReference("cannot subscribe to yourself")
	}

	// The preview query treats 0 as "no limit"; negatives never reach it.
	if recipesLimit < 0 {
		recipesLimit = 0
	}

	author, err := s.repository.AuthorWithRecipes(ctx, authorID, recipesLimit)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperror.NotFound("user not found")
	}

	if err := s.repository.AddSubscription(ctx, caller.UserID, authorID); err != nil {
		return nil, err
	}

	resp := model.NewSubscriptionResponse(author, s.storage.URL)
	return &resp, nil
}

func (s *RelationService) Unsubscribe(ctx context.Context, caller shared.Identity, authorID uuid.UUID) error {
	if !caller.Authenticated {
		return apperror.Permission("authentication required")
	}
	if caller.UserID == authorID {
		return apperror.SelfReference("cannot unsubscribe from yourself")
	}
	return s.repository.RemoveSubscription(ctx, caller.UserID, authorID)
}

func (s *RelationService) ListSubscriptions(ctx context.Context, caller shared.Identity, req *model.ListSubscriptionsRequest) ([]model.SubscriptionResponse, int, error) {
	if !caller.Authenticated {
		return nil, 0, apperror.Permission("authentication required")
	}

	req.Normalize()

	authors, total, err := s.repository.ListSubscriptions(ctx, caller.UserID, req.RecipesLimit, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]model.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		result = append(result, model.NewSubscriptionResponse(&authors[i], s.storage.URL))
	}

	return result, total, nil
}
