package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"recipebook-backend/internal/domains/recipe/model"
	repo "recipebook-backend/internal/domains/recipe/repository"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
	"recipebook-backend/pkg/logger"
)

type RecipeService struct {
	repository repo.RepositoryInterface
	storage    ImageStorage
	images     ImageDecoder
	tasks      TaskEnqueuer
}

func NewRecipeService(r repo.RepositoryInterface, storage ImageStorage, images ImageDecoder, tasks TaskEnqueuer) ServiceInterface {
	return &RecipeService{
		repository: r,
		storage:    storage,
		images:     images,
		tasks:      tasks,
	}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, author shared.Identity, req *model.CreateRecipeRequest) (*model.RecipeResponse, error) {
	if !author.Authenticated {
		return nil, apperror.Permission("authentication required")
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// Reference checks happen before any write so a bad payload never
	// leaves partial state.
	if err := s.checkReferences(ctx, req.Ingredients, req.Tags); err != nil {
		return nil, err
	}

	imageKey, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.UserID,
		Name:        req.Name,
		ImageKey:    imageKey,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		CreatedAt:   time.Now(),
	}

	if err := s.repository.Create(ctx, recipe, toLines(recipe.ID, req.Ingredients), req.Tags); err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, author, recipe.ID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, caller shared.Identity, id uuid.UUID) (*model.RecipeResponse, error) {
	detail, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperror.NotFound("recipe not found")
	}

	flags, err := s.relationFlags(ctx, caller, []uuid.UUID{detail.ID})
	if err != nil {
		return nil, err
	}

	f := flags[detail.ID]
	resp := model.NewRecipeResponse(detail, s.storage.URL(detail.ImageKey), f.Favorited, f.InCart)
	return &resp, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, caller shared.Identity, req *model.ListRecipesRequest) ([]model.RecipeResponse, int, error) {
	req.Normalize()

	filter, err := s.resolveFilter(caller, req)
	if err != nil {
		return nil, 0, err
	}

	details, total, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(details))
	for i := range details {
		ids = append(ids, details[i].ID)
	}

	flags, err := s.relationFlags(ctx, caller, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]model.RecipeResponse, 0, len(details))
	for i := range details {
		f := flags[details[i].ID]
		result = append(result, model.NewRecipeResponse(&details[i], s.storage.URL(details[i].ImageKey), f.Favorited, f.InCart))
	}

	return result, total, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, requester shared.Identity, id uuid.UUID, req *model.UpdateRecipeRequest) (*model.RecipeResponse, error) {
	detail, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperror.NotFound("recipe not found")
	}

	if !requester.Authenticated || requester.UserID != detail.AuthorID {
		return nil, apperror.Permission("only the author can modify a recipe")
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	if err := s.checkReferences(ctx, req.Ingredients, req.Tags); err != nil {
		return nil, err
	}

	recipe := detail.Recipe
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	// The image is replaced only when a new one is supplied.
	if req.Image != nil {
		imageKey, err := s.storeImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImageKey = imageKey
	}

	var lines []model.IngredientLine
	if req.Ingredients != nil {
		lines = toLines(recipe.ID, req.Ingredients)
	}

	if err := s.repository.Update(ctx, &recipe, lines, req.Tags); err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, requester, id)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, requester shared.Identity, id uuid.UUID) error {
	detail, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if detail == nil {
		return apperror.NotFound("recipe not found")
	}

	if !requester.Authenticated || requester.UserID != detail.AuthorID {
		return apperror.Permission("only the author can delete a recipe")
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	s.enqueueImageCleanup(ctx, id, detail.ImageKey)
	return nil
}

// checkReferences fails with a validation error naming every unknown
// ingredient and tag id.
func (s *RecipeService) checkReferences(ctx context.Context, lines []model.IngredientLineInput, tagIDs []uuid.UUID) error {
	fields := map[string]string{}

	if len(lines) > 0 {
		ids := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ID)
		}
		missing, err := s.repository.MissingIngredientIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			fields["ingredients"] = fmt.Sprintf("unknown ingredient ids: %s", joinIDs(missing))
		}
	}

	if len(tagIDs) > 0 {
		missing, err := s.repository.MissingTagIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			fields["tags"] = fmt.Sprintf("unknown tag ids: %s", joinIDs(missing))
		}
	}

	if len(fields) > 0 {
		return apperror.Validation("validation failed", fields)
	}
	return nil
}

func (s *RecipeService) resolveFilter(caller shared.Identity, req *model.ListRecipesRequest) (model.RecipeFilter, error) {
	filter := model.RecipeFilter{
		TagSlugs: req.Tags,
		Page:     req.Page,
		Limit:    req.Limit,
	}

	if req.Author != "" {
		authorID, err := uuid.Parse(req.Author)
		if err != nil {
			return filter, apperror.Validation("validation failed", map[string]string{"author": "must be a valid user id"})
		}
		filter.AuthorID = &authorID
	}

	// Favorited/cart predicates never fire for anonymous callers and
	// never act as negations: unset or false means "don't filter".
	if caller.Authenticated {
		if req.IsFavorited != nil && *req.IsFavorited {
			userID := caller.UserID
			filter.FavoritedBy = &userID
		}
		if req.IsInCart != nil && *req.IsInCart {
			userID := caller.UserID
			filter.InCartOf = &userID
		}
	}

	return filter, nil
}

func (s *RecipeService) relationFlags(ctx context.Context, caller shared.Identity, ids []uuid.UUID) (map[uuid.UUID]repo.RelationFlags, error) {
	if !caller.Authenticated || len(ids) == 0 {
		return map[uuid.UUID]repo.RelationFlags{}, nil
	}
	return s.repository.Flags(ctx, caller.UserID, ids)
}

func (s *RecipeService) storeImage(ctx context.Context, payload string) (string, error) {
	data, err := s.images.DecodeBase64(payload)
	if err != nil {
		return "", apperror.Validation("validation failed", map[string]string{"image": err.Error()})
	}
	if err := s.images.Validate(data); err != nil {
		return "", apperror.Validation("validation failed", map[string]string{"image": err.Error()})
	}

	normalized, err := s.images.Normalize(data)
	if err != nil {
		return "", apperror.Validation("validation failed", map[string]string{"image": err.Error()})
	}

	key := fmt.Sprintf("recipes/%s.jpg", uuid.NewString())
	if _, err := s.storage.Upload(ctx, key, normalized, "image/jpeg"); err != nil {
		return "", apperror.Internal("failed to store image", err)
	}

	return key, nil
}

// enqueueImageCleanup is best effort: the recipe row is already gone
// and a leaked object is cheaper than failing the delete.
func (s *RecipeService) enqueueImageCleanup(ctx context.Context, recipeID uuid.UUID, imageKey string) {
	if s.tasks == nil || imageKey == "" {
		return
	}

	payload, err := json.Marshal(shared.DeleteRecipeImagesPayload{
		RecipeID: recipeID.String(),
		ImageKey: imageKey,
	})
	if err != nil {
		logger.Error("failed to marshal image cleanup payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeDeleteRecipeImages, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("failed to enqueue image cleanup", err)
	}
}

func toLines(recipeID uuid.UUID, inputs []model.IngredientLineInput) []model.IngredientLine {
	lines := make([]model.IngredientLine, 0, len(inputs))
	for _, input := range inputs {
		lines = append(lines, model.IngredientLine{
			RecipeID:     recipeID,
			IngredientID: input.ID,
			Amount:       input.Amount,
		})
	}
	return lines
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}
