package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook-backend/internal/domains/catalog/model"
	"recipebook-backend/internal/shared/apperror"
)

type fakeRepository struct {
	tags        map[uuid.UUID]*model.Tag
	ingredients map[uuid.UUID]*model.Ingredient
	listCalls   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		tags:        map[uuid.UUID]*model.Tag{},
		ingredients: map[uuid.UUID]*model.Ingredient{},
	}
}

func (f *fakeRepository) CreateTag(ctx context.Context, tag *model.Tag) error {
	for _, existing := range f.tags {
		if existing.Name == tag.Name || existing.Color == tag.Color || existing.Slug == tag.Slug {
			return apperror.Duplicate("tag already exists")
		}
	}
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeRepository) GetTagByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	return f.tags[id], nil
}

func (f *fakeRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	f.listCalls++
	var result []model.Tag
	for _, tag := range f.tags {
		result = append(result, *tag)
	}
	return result, nil
}

func (f *fakeRepository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	for _, existing := range f.ingredients {
		if existing.Name == ingredient.Name {
			return apperror.Duplicate("ingredient already exists")
		}
	}
	f.ingredients[ingredient.ID] = ingredient
	return nil
}

func (f *fakeRepository) GetIngredientByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	return f.ingredients[id], nil
}

func (f *fakeRepository) ListIngredients(ctx context.Context, nameFilter string) ([]model.Ingredient, error) {
	var result []model.Ingredient
	for _, ingredient := range f.ingredients {
		if nameFilter == "" || strings.Contains(strings.ToLower(ingredient.Name), strings.ToLower(nameFilter)) {
			result = append(result, *ingredient)
		}
	}
	return result, nil
}

// memoryCache is an in-process stand-in for the Redis cache.
type memoryCache struct {
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func TestCreateTagDerivesSlug(t *testing.T) {
	svc := NewCatalogService(newFakeRepository(), newMemoryCache())

	tag, err := svc.CreateTag(context.Background(), &model.CreateTagRequest{
		Name:  "Quick Breakfast",
		Color: "#49B64E",
	})
	require.NoError(t, err)
	assert.Equal(t, "quick-breakfast", tag.Slug)
}

func TestCreateTagDuplicateColor(t *testing.T) {
	svc := NewCatalogService(newFakeRepository(), newMemoryCache())

	_, err := svc.CreateTag(context.Background(), &model.CreateTagRequest{Name: "Breakfast", Color: "#49B64E"})
	require.NoError(t, err)

	_, err = svc.CreateTag(context.Background(), &model.CreateTagRequest{Name: "Dinner", Color: "#49B64E"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDuplicate))
}

func TestListTagsUsesCache(t *testing.T) {
	r := newFakeRepository()
	svc := NewCatalogService(r, newMemoryCache())

	_, err := svc.CreateTag(context.Background(), &model.CreateTagRequest{Name: "Breakfast", Color: "#49B64E"})
	require.NoError(t, err)

	_, err = svc.ListTags(context.Background())
	require.NoError(t, err)
	_, err = svc.ListTags(context.Background())
	require.NoError(t, err)

	// The second listing is served from cache.
	assert.Equal(t, 1, r.listCalls)
}

func TestCreateTagInvalidatesCache(t *testing.T) {
	r := newFakeRepository()
	svc := NewCatalogService(r, newMemoryCache())

	_, err := svc.ListTags(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateTag(context.Background(), &model.CreateTagRequest{Name: "Breakfast", Color: "#49B64E"})
	require.NoError(t, err)

	tags, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Equal(t, 2, r.listCalls)
}

func TestGetTagNotFound(t *testing.T) {
	svc := NewCatalogService(newFakeRepository(), newMemoryCache())

	_, err := svc.GetTag(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCreateIngredientRejectsUnknownUnit(t *testing.T) {
	svc := NewCatalogService(newFakeRepository(), newMemoryCache())

	_, err := svc.CreateIngredient(context.Background(), &model.CreateIngredientRequest{
		Name:            "flour",
		MeasurementUnit: "cup",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "measurement_unit")
}

func TestListIngredientsNameFilter(t *testing.T) {
	r := newFakeRepository()
	svc := NewCatalogService(r, newMemoryCache())

	for _, name := range []string{"flour", "sunflower oil", "salt"} {
		_, err := svc.CreateIngredient(context.Background(), &model.CreateIngredientRequest{
			Name:            name,
			MeasurementUnit: model.UnitGram,
		})
		require.NoError(t, err)
	}

	result, err := svc.ListIngredients(context.Background(), &model.ListIngredientsRequest{Name: "flo"})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
