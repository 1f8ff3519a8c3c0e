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

// ListProductsParams narrows a storefront product listing.
type ListProductsParams struct {
	Page         int
	PerPage      int
	CategorySlug string
	Search       string
	Featured     *bool
}

// ProductService is the cached read/write path for the catalog. Reads consult
// the cache store first and repopulate it on miss; every mutation invalidates
// the product-tagged entries.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	store      cache.Store
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, store cache.Store) *ProductService {
	return &ProductService{products: products, categories: categories, store: store}
}

// List returns a page of products. Featured-filtered listings bypass the
// cache; everything else is cached under a key derived from the filters.
func (s *ProductService) List(ctx context.Context, params ListProductsParams) (*cache.ProductListPayload, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = cache.DefaultListPerPage
	}

	cacheable := params.Featured == nil
	key := cache.ProductListKey(params.Page, params.PerPage, params.CategorySlug, params.Search)

	if cacheable {
		if data, ok := s.store.Get(ctx, key); ok {
			var payload cache.ProductListPayload
			if err := json.Unmarshal(data, &payload); err == nil {
				return &payload, nil
			}
			zap.L().Warn("Failed to unmarshal cached product list", zap.String("key", key))
		}
	}

	filter := repository.ProductFilter{
		Page:     params.Page,
		PerPage:  params.PerPage,
		Search:   params.Search,
		Featured: params.Featured,
	}
	if params.CategorySlug != "" {
		category, err := s.categories.FindBySlug(ctx, params.CategorySlug)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		filter.CategoryID = &category.ID
	}

	products, total, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	payload := &cache.ProductListPayload{Products: products, Total: total}
	if cacheable {
		s.cacheSet(ctx, key, payload, cache.TypeProducts)
	}
	return payload, nil
}

// GetBySlug returns one product, cached under its slug key.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	key := cache.ProductKey(slug)
	if data, ok := s.store.Get(ctx, key); ok {
		var product models.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		zap.L().Warn("Failed to unmarshal cached product", zap.String("key", key))
	}

	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	s.cacheSet(ctx, key, product, cache.TypeProduct)
	return product, nil
}

// Create inserts a product and invalidates the product cache.
func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	category, err := s.categories.FindBySlug(ctx, req.CategorySlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.New(404, fmt.Sprintf("Category '%s' not found", req.CategorySlug), nil)
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:            uuid.New(),
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		InStock:       req.Stock > 0,
		CategoryID:    category.ID,
		Images:        req.Images,
		IsFeatured:    req.IsFeatured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, apperrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	s.store.InvalidateType(ctx, cache.TypeProducts, product.Slug)
	return product, nil
}

// Update applies a partial update and invalidates the product cache. Stock is
// not updatable here; that path belongs to the stock ledger.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read product: %w", err)
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.CategorySlug != nil {
		category, err := s.categories.FindBySlug(ctx, *req.CategorySlug)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.New(404, fmt.Sprintf("Category '%s' not found", *req.CategorySlug), nil)
			}
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		updates["category_id"] = category.ID
	}

	if len(updates) == 0 {
		return apperrors.ErrInvalidInput
	}

	matched, err := s.products.Update(ctx, id, updates)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}

	s.store.InvalidateType(ctx, cache.TypeProducts, product.Slug)
	return nil
}

// Delete soft-deletes a product and invalidates the product cache.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read product: %w", err)
	}

	modified, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if modified == 0 {
		return apperrors.ErrNotFound
	}

	s.store.InvalidateType(ctx, cache.TypeProducts, product.Slug)
	return nil
}

func (s *ProductService) cacheSet(ctx context.Context, key string, payload interface{}, typ cache.Type) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Warn("Failed to marshal payload for cache", zap.String("key", key), zap.Error(err))
		return
	}
	s.store.Set(ctx, key, data, typ, cache.TTLFor(typ))
}
