package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/cache"
	apperrors "github.com/ahmedharati210-cyber/life-accessories-app-sub001/errors"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
)

// CategoryService is the cached read/write path for categories.
type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	store      cache.Store
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, store cache.Store) *CategoryService {
	return &CategoryService{categories: categories, products: products, store: store}
}

// List returns all categories, cached as one entry.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	key := cache.CategoriesKey()
	if data, ok := s.store.Get(ctx, key); ok {
		var categories []*models.Category
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
		zap.L().Warn("Failed to unmarshal cached categories", zap.String("key", key))
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.cacheSet(ctx, key, categories, cache.TypeCategories)
	return categories, nil
}

// GetBySlug returns one category, cached under its slug key.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	key := cache.CategoryKey(slug)
	if data, ok := s.store.Get(ctx, key); ok {
		var category models.Category
		if err := json.Unmarshal(data, &category); err == nil {
			return &category, nil
		}
		zap.L().Warn("Failed to unmarshal cached category", zap.String("key", key))
	}

	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}

	s.cacheSet(ctx, key, category, cache.TypeCategory)
	return category, nil
}

// Create inserts a category and invalidates the category cache.
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	now := time.Now().UTC()
	category := &models.Category{
		ID:          uuid.New(),
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, apperrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	s.store.InvalidateType(ctx, cache.TypeCategories, category.Slug)
	return category, nil
}

// Update applies a partial update and invalidates the category cache.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req models.UpdateCategoryRequest) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read category: %w", err)
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if len(updates) == 0 {
		return apperrors.ErrInvalidInput
	}

	matched, err := s.categories.Update(ctx, id, updates)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}

	s.store.InvalidateType(ctx, cache.TypeCategories, category.Slug)
	return nil
}

// Delete removes a category. Deletion is blocked while any product still
// references the category, so no orphaned references are left behind.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read category: %w", err)
	}

	referencing, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count referencing products: %w", err)
	}
	if referencing > 0 {
		return apperrors.ErrCategoryInUse
	}

	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if deleted == 0 {
		return apperrors.ErrNotFound
	}

	s.store.InvalidateType(ctx, cache.TypeCategories, category.Slug)
	return nil
}

func (s *CategoryService) cacheSet(ctx context.Context, key string, payload interface{}, typ cache.Type) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Warn("Failed to marshal payload for cache", zap.String("key", key), zap.Error(err))
		return
	}
	s.store.Set(ctx, key, data, typ, cache.TTLFor(typ))
}
