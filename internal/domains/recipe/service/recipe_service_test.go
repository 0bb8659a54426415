package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook-backend/internal/domains/recipe/model"
	repo "recipebook-backend/internal/domains/recipe/repository"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
)

type fakeRepository struct {
	details            map[uuid.UUID]*model.RecipeDetail
	missingIngredients []uuid.UUID
	missingTags        []uuid.UUID
	flags              map[uuid.UUID]repo.RelationFlags

	createdLines []model.IngredientLine
	createdTags  []uuid.UUID
	updated      *model.Recipe
	updatedLines []model.IngredientLine
	updatedTags  []uuid.UUID
	deleted      []uuid.UUID
	lastFilter   model.RecipeFilter
	flagsQueried bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		details: map[uuid.UUID]*model.RecipeDetail{},
		flags:   map[uuid.UUID]repo.RelationFlags{},
	}
}

func (f *fakeRepository) Create(ctx context.Context, recipe *model.Recipe, lines []model.IngredientLine, tagIDs []uuid.UUID) error {
	f.createdLines = lines
	f.createdTags = tagIDs

	detail := &model.RecipeDetail{Recipe: *recipe}
	for _, line := range lines {
		detail.Lines = append(detail.Lines, model.IngredientLineDetail{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	f.details[recipe.ID] = detail
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, recipe *model.Recipe, lines []model.IngredientLine, tagIDs []uuid.UUID) error {
	f.updated = recipe
	f.updatedLines = lines
	f.updatedTags = tagIDs

	if detail, ok := f.details[recipe.ID]; ok {
		detail.Recipe = *recipe
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.details, id)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error) {
	return f.details[id], nil
}

func (f *fakeRepository) List(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeDetail, int, error) {
	f.lastFilter = filter

	var result []model.RecipeDetail
	for _, detail := range f.details {
		result = append(result, *detail)
	}
	return result, len(result), nil
}

func (f *fakeRepository) MissingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return f.missingIngredients, nil
}

func (f *fakeRepository) MissingTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return f.missingTags, nil
}

func (f *fakeRepository) Flags(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]repo.RelationFlags, error) {
	f.flagsQueried = true
	return f.flags, nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.uploads[key] = data
	return "https://storage.local/" + key, nil
}

func (f *fakeStorage) URL(key string) string {
	return "https://storage.local/" + key
}

type fakeDecoder struct {
	decodeErr error
}

func (f *fakeDecoder) DecodeBase64(payload string) ([]byte, error) {
	if f.decodeErr != nil {
		return nil, f.decodeErr
	}
	return []byte(payload), nil
}

func (f *fakeDecoder) Validate(data []byte) error { return nil }

func (f *fakeDecoder) Normalize(data []byte) ([]byte, error) { return data, nil }

func newTestService(r *fakeRepository) ServiceInterface {
	return NewRecipeService(r, newFakeStorage(), &fakeDecoder{}, nil)
}

func validCreateRequest() *model.CreateRecipeRequest {
	return &model.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Image:       "aGVsbG8=",
		Ingredients: []model.IngredientLineInput{{ID: uuid.New(), Amount: 200}},
		Tags:        []uuid.UUID{uuid.New()},
	}
}

func seedRecipe(r *fakeRepository, authorID uuid.UUID) *model.RecipeDetail {
	detail := &model.RecipeDetail{
		Recipe: model.Recipe{
			ID:          uuid.New(),
			AuthorID:    authorID,
			Name:        "Soup",
			ImageKey:    "recipes/soup.jpg",
			Text:        "Boil everything.",
			CookingTime: 45,
			CreatedAt:   time.Now(),
		},
	}
	r.details[detail.ID] = detail
	return detail
}

func TestCreateRecipeRequiresAuthentication(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.CreateRecipe(context.Background(), shared.Anonymous(), validCreateRequest())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
}

func TestCreateRecipeReportsUnknownReferences(t *testing.T) {
	r := newFakeRepository()
	r.missingIngredients = []uuid.UUID{uuid.New()}
	r.missingTags = []uuid.UUID{uuid.New()}
	svc := newTestService(r)

	_, err := svc.CreateRecipe(context.Background(), shared.Authenticated(uuid.New()), validCreateRequest())
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "ingredients")
	assert.Contains(t, appErr.Fields, "tags")
}

func TestCreateRecipePersistsLinesAndTags(t *testing.T) {
	r := newFakeRepository()
	svc := newTestService(r)

	req := validCreateRequest()
	author := shared.Authenticated(uuid.New())

	resp, err := svc.CreateRecipe(context.Background(), author, req)
	require.NoError(t, err)

	require.Len(t, r.createdLines, 1)
	assert.Equal(t, req.Ingredients[0].ID, r.createdLines[0].IngredientID)
	assert.Equal(t, req.Ingredients[0].Amount, r.createdLines[0].Amount)
	assert.Equal(t, req.Tags, r.createdTags)

	assert.Equal(t, req.Name, resp.Name)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInCart)
	assert.Contains(t, resp.Image, "https://storage.local/recipes/")
}

func TestGetRecipeNotFound(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.GetRecipe(context.Background(), shared.Anonymous(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListRecipesAnonymousIgnoresRelationFilters(t *testing.T) {
	r := newFakeRepository()
	seedRecipe(r, uuid.New())
	svc := newTestService(r)

	yes := true
	req := &model.ListRecipesRequest{IsFavorited: &yes, IsInCart: &yes}

	_, _, err := svc.ListRecipes(context.Background(), shared.Anonymous(), req)
	require.NoError(t, err)

	assert.Nil(t, r.lastFilter.FavoritedBy)
	assert.Nil(t, r.lastFilter.InCartOf)
	assert.False(t, r.flagsQueried)
}

func TestListRecipesResolvesRelationFiltersForCaller(t *testing.T) {
	r := newFakeRepository()
	svc := newTestService(r)

	callerID := uuid.New()
	yes := true
	no := false
	req := &model.ListRecipesRequest{IsFavorited: &yes, IsInCart: &no}

	_, _, err := svc.ListRecipes(context.Background(), shared.Authenticated(callerID), req)
	require.NoError(t, err)

	require.NotNil(t, r.lastFilter.FavoritedBy)
	assert.Equal(t, callerID, *r.lastFilter.FavoritedBy)
	// False is "don't filter", not "exclude".
	assert.Nil(t, r.lastFilter.InCartOf)
}

func TestListRecipesRejectsMalformedAuthorFilter(t *testing.T) {
	svc := newTestService(newFakeRepository())

	req := &model.ListRecipesRequest{Author: "not-a-uuid"}
	_, _, err := svc.ListRecipes(context.Background(), shared.Anonymous(), req)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateRecipeRejectsNonOwner(t *testing.T) {
	r := newFakeRepository()
	detail := seedRecipe(r, uuid.New())
	svc := newTestService(r)

	name := "Stolen"
	_, err := svc.UpdateRecipe(context.Background(), shared.Authenticated(uuid.New()), detail.ID, &model.UpdateRecipeRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
	assert.Nil(t, r.updated)
}

func TestUpdateRecipeKeepsImageAndSetsWhenOmitted(t *testing.T) {
	r := newFakeRepository()
	authorID := uuid.New()
	detail := seedRecipe(r, authorID)
	svc := newTestService(r)

	name := "Better soup"
	_, err := svc.UpdateRecipe(context.Background(), shared.Authenticated(authorID), detail.ID, &model.UpdateRecipeRequest{Name: &name})
	require.NoError(t, err)

	require.NotNil(t, r.updated)
	assert.Equal(t, "Better soup", r.updated.Name)
	assert.Equal(t, "recipes/soup.jpg", r.updated.ImageKey)
	assert.Equal(t, 45, r.updated.CookingTime)
	assert.Nil(t, r.updatedLines)
	assert.Nil(t, r.updatedTags)
}

func TestUpdateRecipeReplacesAssociationSets(t *testing.T) {
	r := newFakeRepository()
	authorID := uuid.New()
	detail := seedRecipe(r, authorID)
	svc := newTestService(r)

	lines := []model.IngredientLineInput{{ID: uuid.New(), Amount: 3}}
	tags := []uuid.UUID{uuid.New(), uuid.New()}

	_, err := svc.UpdateRecipe(context.Background(), shared.Authenticated(authorID), detail.ID, &model.UpdateRecipeRequest{
		Ingredients: lines,
		Tags:        tags,
	})
	require.NoError(t, err)

	require.Len(t, r.updatedLines, 1)
	assert.Equal(t, lines[0].ID, r.updatedLines[0].IngredientID)
	assert.Equal(t, tags, r.updatedTags)
}

func TestDeleteRecipeRejectsNonOwner(t *testing.T) {
	r := newFakeRepository()
	detail := seedRecipe(r, uuid.New())
	svc := newTestService(r)

	err := svc.DeleteRecipe(context.Background(), shared.Authenticated(uuid.New()), detail.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
	assert.Empty(t, r.deleted)
}

func TestDeleteRecipeByOwner(t *testing.T) {
	r := newFakeRepository()
	authorID := uuid.New()
	detail := seedRecipe(r, authorID)
	svc := newTestService(r)

	err := svc.DeleteRecipe(context.Background(), shared.Authenticated(authorID), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{detail.ID}, r.deleted)
}

func TestCreateRecipeRejectsUndecodableImage(t *testing.T) {
	r := newFakeRepository()
	decoder := &fakeDecoder{decodeErr: errors.New("invalid base64 payload")}
	svc := NewRecipeService(r, newFakeStorage(), decoder, nil)

	_, err := svc.CreateRecipe(context.Background(), shared.Authenticated(uuid.New()), validCreateRequest())
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "image")
}
