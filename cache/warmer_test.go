package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
)

type mockProductFetcher struct{ mock.Mock }

func (m *mockProductFetcher) FindPage(ctx context.Context, page, perPage int) ([]*models.Product, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductFetcher) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type mockCategoryFetcher struct{ mock.Mock }

func (m *mockCategoryFetcher) FindAll(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *mockCategoryFetcher) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func TestWarmAll(t *testing.T) {
	ctx := context.Background()

	t.Run("PopulatesHotKeys", func(t *testing.T) {
		store := NewMemoryStore()
		products := new(mockProductFetcher)
		categories := new(mockCategoryFetcher)
		w := NewWarmer(store, products, categories)

		listing := []*models.Product{{ID: uuid.New(), Slug: "ceramic-mug"}}
		products.On("FindPage", ctx, 1, DefaultListPerPage).Return(listing, int64(1), nil)
		categories.On("FindAll", ctx).Return([]*models.Category{{ID: uuid.New(), Slug: "kitchen"}}, nil)

		w.WarmAll(ctx)

		data, ok := store.Get(ctx, ProductListKey(1, DefaultListPerPage, "", ""))
		assert.True(t, ok)
		var payload ProductListPayload
		assert.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, int64(1), payload.Total)
		assert.Len(t, payload.Products, 1)

		_, ok = store.Get(ctx, CategoriesKey())
		assert.True(t, ok)
	})

	t.Run("ProductFailureDoesNotBlockCategories", func(t *testing.T) {
		store := NewMemoryStore()
		products := new(mockProductFetcher)
		categories := new(mockCategoryFetcher)
		w := NewWarmer(store, products, categories)

		products.On("FindPage", ctx, 1, DefaultListPerPage).Return(nil, int64(0), assert.AnError)
		categories.On("FindAll", ctx).Return([]*models.Category{{Slug: "kitchen"}}, nil)

		w.WarmAll(ctx)

		_, ok := store.Get(ctx, ProductListKey(1, DefaultListPerPage, "", ""))
		assert.False(t, ok)
		_, ok = store.Get(ctx, CategoriesKey())
		assert.True(t, ok)
	})
}

func TestWarmSingleEntities(t *testing.T) {
	ctx := context.Background()

	store := NewMemoryStore()
	products := new(mockProductFetcher)
	categories := new(mockCategoryFetcher)
	w := NewWarmer(store, products, categories)

	products.On("FindBySlug", ctx, "ceramic-mug").
		Return(&models.Product{ID: uuid.New(), Slug: "ceramic-mug"}, nil)
	categories.On("FindBySlug", ctx, "kitchen").
		Return(&models.Category{ID: uuid.New(), Slug: "kitchen"}, nil)

	w.WarmProduct(ctx, "ceramic-mug")
	w.WarmCategory(ctx, "kitchen")

	_, ok := store.Get(ctx, ProductKey("ceramic-mug"))
	assert.True(t, ok)
	_, ok = store.Get(ctx, CategoryKey("kitchen"))
	assert.True(t, ok)
}
