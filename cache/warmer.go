package cache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
)

// DefaultListPerPage is the storefront's default page size. The warmer
// pre-populates the first default page since that is the hot key.
const DefaultListPerPage = 12

// ProductListPayload is the cached shape for product listings, shared by the
// read path and the warmer so both produce identical entries.
type ProductListPayload struct {
	Products []*models.Product `json:"products"`
	Total    int64             `json:"total"`
}

// ProductFetcher is the slice of the product repository the warmer needs.
type ProductFetcher interface {
	FindPage(ctx context.Context, page, perPage int) ([]*models.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// CategoryFetcher is the slice of the category repository the warmer needs.
type CategoryFetcher interface {
	FindAll(ctx context.Context) ([]*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// Warmer pre-populates a Store with the known hot keys. Every warm operation
// is independent: a failed fetch is logged and the rest proceed.
type Warmer struct {
	store      Store
	products   ProductFetcher
	categories CategoryFetcher
}

func NewWarmer(store Store, products ProductFetcher, categories CategoryFetcher) *Warmer {
	return &Warmer{store: store, products: products, categories: categories}
}

// WarmAll warms the product and category listings. Individual failures do
// not abort the pass.
func (w *Warmer) WarmAll(ctx context.Context) {
	w.WarmProducts(ctx)
	w.WarmCategories(ctx)
}

// WarmProducts caches the first default page of the product listing.
func (w *Warmer) WarmProducts(ctx context.Context) {
	products, total, err := w.products.FindPage(ctx, 1, DefaultListPerPage)
	if err != nil {
		zap.L().Warn("Product warm fetch failed", zap.Error(err))
		return
	}
	w.set(ctx, ProductListKey(1, DefaultListPerPage, "", ""), ProductListPayload{Products: products, Total: total}, TypeProducts)
}

// WarmCategories caches the full category listing.
func (w *Warmer) WarmCategories(ctx context.Context) {
	categories, err := w.categories.FindAll(ctx)
	if err != nil {
		zap.L().Warn("Category warm fetch failed", zap.Error(err))
		return
	}
	w.set(ctx, CategoriesKey(), categories, TypeCategories)
}

// WarmProduct caches a single product by slug.
func (w *Warmer) WarmProduct(ctx context.Context, slug string) {
	product, err := w.products.FindBySlug(ctx, slug)
	if err != nil {
		zap.L().Warn("Product warm fetch failed", zap.String("slug", slug), zap.Error(err))
		return
	}
	w.set(ctx, ProductKey(slug), product, TypeProduct)
}

// WarmCategory caches a single category by slug.
func (w *Warmer) WarmCategory(ctx context.Context, slug string) {
	category, err := w.categories.FindBySlug(ctx, slug)
	if err != nil {
		zap.L().Warn("Category warm fetch failed", zap.String("slug", slug), zap.Error(err))
		return
	}
	w.set(ctx, CategoryKey(slug), category, TypeCategory)
}

func (w *Warmer) set(ctx context.Context, key string, payload interface{}, typ Type) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Warn("Cache warm marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	w.store.Set(ctx, key, data, typ, TTLFor(typ))
}
