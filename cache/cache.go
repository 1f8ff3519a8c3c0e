package cache

import (
	"context"
	"fmt"
	"time"
)

// Type tags every cache entry so invalidation can target one slice of the
// keyspace without clearing unrelated data.
type Type string

const (
	TypeProducts   Type = "products"
	TypeCategories Type = "categories"
	TypeProduct    Type = "product"
	TypeCategory   Type = "category"
	TypeOther      Type = "other"
)

// TTLs per type. Product data mutates often; categories rarely do.
const (
	ProductTTL  = 5 * time.Minute
	CategoryTTL = 30 * time.Minute
	DefaultTTL  = 10 * time.Minute
)

// Stats describes the current contents of a store.
type Stats struct {
	Entries     int          `json:"entries"`
	ByType      map[Type]int `json:"by_type"`
	ApproxBytes int64        `json:"approx_bytes"`
}

// Store is a typed key/value cache with per-entry TTL. Implementations are
// best-effort: a failed Set or invalidation is logged, never fatal. Entries
// past their TTL are treated as absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, typ Type, ttl time.Duration)
	// InvalidateType drops every entry tagged typ. Identifiers additionally
	// drop the single-item entries of the singular counterpart type, e.g.
	// InvalidateType(TypeProducts, "candle-set") also drops "product:candle-set".
	InvalidateType(ctx context.Context, typ Type, identifiers ...string)
	InvalidateAll(ctx context.Context)
	Stats(ctx context.Context) Stats
}

// Cache keys in one place so they don't sprawl across handlers.

func ProductKey(slug string) string { return "product:" + slug }

func CategoryKey(slug string) string { return "category:" + slug }

func CategoriesKey() string { return "categories:all" }

func ProductListKey(page, perPage int, category, search string) string {
	return fmt.Sprintf("products:p:%d:l:%d:c:%s:q:%s", page, perPage, category, search)
}

// TTLFor returns the type-appropriate TTL.
func TTLFor(typ Type) time.Duration {
	switch typ {
	case TypeProducts, TypeProduct:
		return ProductTTL
	case TypeCategories, TypeCategory:
		return CategoryTTL
	default:
		return DefaultTTL
	}
}

// singularOf maps list types to their single-item counterpart, used when an
// invalidation carries identifiers.
func singularOf(typ Type) Type {
	switch typ {
	case TypeProducts:
		return TypeProduct
	case TypeCategories:
		return TypeCategory
	default:
		return typ
	}
}

// identifierKey builds the single-item key an identifier refers to.
func identifierKey(typ Type, identifier string) string {
	return string(singularOf(typ)) + ":" + identifier
}
