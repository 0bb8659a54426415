package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recipebook-backend/internal/domains/catalog/model"
	repo "recipebook-backend/internal/domains/catalog/repository"
	"recipebook-backend/internal/shared/apperror"
	"recipebook-backend/internal/shared/utils"
	"recipebook-backend/pkg/cache"
	"recipebook-backend/pkg/logger"
)

const (
	tagListCacheKey = "catalog:tags"
	// Tags and ingredients are immutable reference data; a long TTL is
	// safe because admin seeding invalidates explicitly.
	tagListCacheTTL = 12 * time.Hour
)

type CatalogService struct {
	repository repo.RepositoryInterface
	cache      cache.Cache
}

func NewCatalogService(r repo.RepositoryInterface, c cache.Cache) ServiceInterface {
	return &CatalogService{
		repository: r,
		cache:      c,
	}
}

func (s *CatalogService) CreateTag(ctx context.Context, req *model.CreateTagRequest) (*model.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	tag := &model.Tag{
		ID:        uuid.New(),
		Name:      req.Name,
		Color:     req.Color,
		Slug:      slug,
		CreatedAt: time.Now(),
	}

	if err := s.repository.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, tagListCacheKey); err != nil {
		logger.Warn("failed to invalidate tag cache", map[string]interface{}{"error": err.Error()})
	}

	return tag, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	tag, err := s.repository.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.NotFound("tag not found")
	}
	return tag, nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]model.Tag, error) {
	var cached []model.Tag
	found, err := s.cache.Get(ctx, tagListCacheKey, &cached)
	if err != nil {
		// Degraded cache is non-critical; fall through to the store.
		logger.Warn("tag cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return cached, nil
	}

	tags, err := s.repository.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, tagListCacheKey, tags, tagListCacheTTL); err != nil {
		logger.Warn("tag cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return tags, nil
}

func (s *CatalogService) CreateIngredient(ctx context.Context, req *model.CreateIngredientRequest) (*model.Ingredient, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	ingredient := &model.Ingredient{
		ID:              uuid.New(),
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
		CreatedAt:       time.Now(),
	}

	if err := s.repository.CreateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}

	return ingredient, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	ingredient, err := s.repository.GetIngredientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NotFound("ingredient not found")
	}
	return ingredient, nil
}

func (s *CatalogService) ListIngredients(ctx context.Context, req *model.ListIngredientsRequest) ([]model.Ingredient, error) {
	return s.repository.ListIngredients(ctx, req.Name)
}
