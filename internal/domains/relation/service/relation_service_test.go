package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook-backend/internal/domains/relation/model"
	userModel "recipebook-backend/internal/domains/user/model"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
)

type pair struct {
	a, b uuid.UUID
}

type fakeRepository struct {
	recipes       map[uuid.UUID]*model.RecipeCard
	users         map[uuid.UUID]*model.SubscribedAuthor
	favorites     map[pair]bool
	cartItems     map[pair]bool
	subscriptions map[pair]bool
	touched       bool

	lastRecipesLimit int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		recipes:       map[uuid.UUID]*model.RecipeCard{},
		users:         map[uuid.UUID]*model.SubscribedAuthor{},
		favorites:     map[pair]bool{},
		cartItems:     map[pair]bool{},
		subscriptions: map[pair]bool{},
	}
}

func (f *fakeRepository) addMark(marks map[pair]bool, userID, recipeID uuid.UUID, duplicateMsg string) error {
	f.touched = true
	key := pair{userID, recipeID}
	if marks[key] {
		return apperror.Duplicate(duplicateMsg)
	}
	marks[key] = true
	return nil
}

func (f *fakeRepository) removeMark(marks map[pair]bool, userID, recipeID uuid.UUID, missingMsg string) error {
	f.touched = true
	key := pair{userID, recipeID}
	if !marks[key] {
		return apperror.NotFound(missingMsg)
	}
	delete(marks, key)
	return nil
}

func (f *fakeRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return f.addMark(f.favorites, userID, recipeID, "recipe already favorited")
}

func (f *fakeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return f.removeMark(f.favorites, userID, recipeID, "recipe is not favorited")
}

func (f *fakeRepository) AddCartItem(ctx context.Context, userID, recipeID uuid.UUID) error {
	return f.addMark(f.cartItems, userID, recipeID, "recipe already in shopping cart")
}

func (f *fakeRepository) RemoveCartItem(ctx context.Context, userID, recipeID uuid.UUID) error {
	return f.removeMark(f.cartItems, userID, recipeID, "recipe is not in shopping cart")
}

func (f *fakeRepository) AddSubscription(ctx context.Context, userID, authorID uuid.UUID) error {
	return f.addMark(f.subscriptions, userID, authorID, "already subscribed to this user")
}

func (f *fakeRepository) RemoveSubscription(ctx context.Context, userID, authorID uuid.UUID) error {
	return f.removeMark(f.subscriptions, userID, authorID, "not subscribed to this user")
}

func (f *fakeRepository) SubscriptionExists(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	return f.subscriptions[pair{userID, authorID}], nil
}

func (f *fakeRepository) RecipeCard(ctx context.Context, recipeID uuid.UUID) (*model.RecipeCard, error) {
	return f.recipes[recipeID], nil
}

func (f *fakeRepository) AuthorWithRecipes(ctx context.Context, authorID uuid.UUID, recipesLimit int) (*model.SubscribedAuthor, error) {
	f.lastRecipesLimit = recipesLimit
	author, ok := f.users[authorID]
	if !ok {
		return nil, nil
	}
	result := *author
	if recipesLimit > 0 && len(result.Recipes) > recipesLimit {
		result.Recipes = result.Recipes[:recipesLimit]
	}
	return &result, nil
}

func (f *fakeRepository) ListSubscriptions(ctx context.Context, userID uuid.UUID, recipesLimit, page, limit int) ([]model.SubscribedAuthor, int, error) {
	var result []model.SubscribedAuthor
	for key := range f.subscriptions {
		if key.a != userID {
			continue
		}
		author, err := f.AuthorWithRecipes(ctx, key.b, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *author)
	}
	return result, len(result), nil
}

type fakeResolver struct{}

func (fakeResolver) URL(key string) string { return "https://storage.local/" + key }

func seedRecipe(f *fakeRepository) *model.RecipeCard {
	card := &model.RecipeCard{
		ID:          uuid.New(),
		Name:        "Soup",
		ImageKey:    "recipes/soup.jpg",
		CookingTime: 45,
	}
	f.recipes[card.ID] = card
	return card
}

func seedAuthor(f *fakeRepository, recipeCount int) uuid.UUID {
	id := uuid.New()
	author := &model.SubscribedAuthor{
		Author:       userModel.User{ID: id, Username: "cook", Email: "cook@example.com"},
		RecipesCount: recipeCount,
	}
	for i := 0; i < recipeCount; i++ {
		author.Recipes = append(author.Recipes, model.RecipeCard{ID: uuid.New(), Name: "Dish"})
	}
	f.users[id] = author
	return id
}

func TestAddFavoriteRequiresAuthentication(t *testing.T) {
	svc := NewRelationService(newFakeRepository(), fakeResolver{})

	_, err := svc.AddFavorite(context.Background(), shared.Anonymous(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPermission))
}

func TestAddFavoriteUnknownRecipe(t *testing.T) {
	svc := NewRelationService(newFakeRepository(), fakeResolver{})

	_, err := svc.AddFavorite(context.Background(), shared.Authenticated(uuid.New()), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAddFavoriteTwiceIsDuplicate(t *testing.T) {
	f := newFakeRepository()
	card := seedRecipe(f)
	svc := NewRelationService(f, fakeResolver{})
	caller := shared.Authenticated(uuid.New())

	resp, err := svc.AddFavorite(context.Background(), caller, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.Name, resp.Name)
	assert.Equal(t, "https://storage.local/recipes/soup.jpg", resp.Image)

	_, err = svc.AddFavorite(context.Background(), caller, card.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDuplicate))
}

func TestRemoveFavoriteWhenAbsent(t *testing.T) {
	f := newFakeRepository()
	card := seedRecipe(f)
	svc := NewRelationService(f, fakeResolver{})

	err := svc.RemoveFavorite(context.Background(), shared.Authenticated(uuid.New()), card.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCartToggleContractMatchesFavorites(t *testing.T) {
	f := newFakeRepository()
	card := seedRecipe(f)
	svc := NewRelationService(f, fakeResolver{})
	caller := shared.Authenticated(uuid.New())

	_, err := svc.AddCartItem(context.Background(), caller, card.ID)
	require.NoError(t, err)

	_, err = svc.AddCartItem(context.Background(), caller, card.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindDuplicate))

	require.NoError(t, svc.RemoveCartItem(context.Background(), caller, card.ID))

	err = svc.RemoveCartItem(context.Background(), caller, card.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSubscribeToSelf(t *testing.T) {
	f := newFakeRepository()
	svc := NewRelationService(f, fakeResolver{})

	callerID := uuid.New()
	_, err := svc.Subscribe(context.Background(), shared.Authenticated(callerID), callerID, 0)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindSelfReference))
	// The self check fires before any store access.
	assert.False(t, f.touched)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	svc := NewRelationService(newFakeRepository(), fakeResolver{})

	_, err := svc.Subscribe(context.Background(), shared.Authenticated(uuid.New()), uuid.New(), 0)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSubscribeTwiceIsDuplicate(t *testing.T) {
	f := newFakeRepository()
	authorID := seedAuthor(f, 2)
	svc := NewRelationService(f, fakeResolver{})
	caller := shared.Authenticated(uuid.New())

	resp, err := svc.Subscribe(context.Background(), caller, authorID, 0)
	require.NoError(t, err)
	assert.True(t, resp.IsSubscribed)
	assert.Equal(t, 2, resp.RecipesCount)

	_, err = svc.Subscribe(context.Background(), caller, authorID, 0)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDuplicate))
}

func TestSubscribeClampsNegativeRecipesLimit(t *testing.T) {
	// The preview query reads the limit through NULLIF($2, 0); a negative
	// value would be a bare LIMIT -1, which Postgres rejects.
	f := newFakeRepository()
	authorID := seedAuthor(f, 3)
	svc := NewRelationService(f, fakeResolver{})

	resp, err := svc.Subscribe(context.Background(), shared.Authenticated(uuid.New()), authorID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, f.lastRecipesLimit)
	assert.Len(t, resp.Recipes, 3)
}

func TestListSubscriptionsTruncatesPreviewNotCount(t *testing.T) {
	f := newFakeRepository()
	authorID := seedAuthor(f, 5)
	svc := NewRelationService(f, fakeResolver{})
	caller := shared.Authenticated(uuid.New())

	_, err := svc.Subscribe(context.Background(), caller, authorID, 0)
	require.NoError(t, err)

	req := &model.ListSubscriptionsRequest{RecipesLimit: 2}
	subs, total, err := svc.ListSubscriptions(context.Background(), caller, req)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Recipes, 2)
	// The count reflects everything the author has, not the preview.
	assert.Equal(t, 5, subs[0].RecipesCount)
}

func TestUnsubscribeWhenNotSubscribed(t *testing.T) {
	f := newFakeRepository()
	authorID := seedAuthor(f, 0)
	svc := NewRelationService(f, fakeResolver{})

	err := svc.Unsubscribe(context.Background(), shared.Authenticated(uuid.New()), authorID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
