package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		s := NewMemoryStore()
		s.Set(ctx, ProductKey("ceramic-mug"), []byte(`{"slug":"ceramic-mug"}`), TypeProduct, ProductTTL)

		value, ok := s.Get(ctx, ProductKey("ceramic-mug"))

		assert.True(t, ok)
		assert.JSONEq(t, `{"slug":"ceramic-mug"}`, string(value))
	})

	t.Run("MissingKey", func(t *testing.T) {
		s := NewMemoryStore()

		_, ok := s.Get(ctx, ProductKey("nope"))

		assert.False(t, ok)
	})

	t.Run("ExpiredEntryIsAbsent", func(t *testing.T) {
		s := NewMemoryStore()
		current := time.Now()
		s.now = func() time.Time { return current }

		s.Set(ctx, ProductKey("ceramic-mug"), []byte("x"), TypeProduct, time.Minute)
		current = current.Add(61 * time.Second)

		_, ok := s.Get(ctx, ProductKey("ceramic-mug"))

		assert.False(t, ok)
		// The expired entry was dropped, not just hidden.
		assert.Equal(t, 0, s.Stats(ctx).Entries)
	})

	t.Run("SetRefreshesTTL", func(t *testing.T) {
		s := NewMemoryStore()
		current := time.Now()
		s.now = func() time.Time { return current }

		s.Set(ctx, ProductKey("ceramic-mug"), []byte("old"), TypeProduct, time.Minute)
		current = current.Add(50 * time.Second)
		s.Set(ctx, ProductKey("ceramic-mug"), []byte("new"), TypeProduct, time.Minute)
		current = current.Add(50 * time.Second)

		value, ok := s.Get(ctx, ProductKey("ceramic-mug"))

		assert.True(t, ok)
		assert.Equal(t, "new", string(value))
	})
}

func TestMemoryStoreInvalidation(t *testing.T) {
	ctx := context.Background()

	seed := func() *MemoryStore {
		s := NewMemoryStore()
		s.Set(ctx, ProductListKey(1, 12, "", ""), []byte("list"), TypeProducts, ProductTTL)
		s.Set(ctx, ProductKey("ceramic-mug"), []byte("one"), TypeProduct, ProductTTL)
		s.Set(ctx, CategoriesKey(), []byte("cats"), TypeCategories, CategoryTTL)
		s.Set(ctx, CategoryKey("kitchen"), []byte("cat"), TypeCategory, CategoryTTL)
		return s
	}

	t.Run("TypeScopedInvalidation", func(t *testing.T) {
		s := seed()

		s.InvalidateType(ctx, TypeProducts)

		_, ok := s.Get(ctx, ProductListKey(1, 12, "", ""))
		assert.False(t, ok)
		// The singular entry survives without an identifier.
		_, ok = s.Get(ctx, ProductKey("ceramic-mug"))
		assert.True(t, ok)
		// Categories are untouched.
		_, ok = s.Get(ctx, CategoriesKey())
		assert.True(t, ok)
	})

	t.Run("IdentifierDropsSingularEntry", func(t *testing.T) {
		s := seed()

		s.InvalidateType(ctx, TypeProducts, "ceramic-mug")

		_, ok := s.Get(ctx, ProductKey("ceramic-mug"))
		assert.False(t, ok)
		_, ok = s.Get(ctx, CategoryKey("kitchen"))
		assert.True(t, ok)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		s := seed()

		s.InvalidateAll(ctx)

		assert.Equal(t, 0, s.Stats(ctx).Entries)
	})
}

func TestMemoryStoreStats(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryStore()
	s.Set(ctx, ProductKey("a"), []byte("aaaa"), TypeProduct, ProductTTL)
	s.Set(ctx, ProductKey("b"), []byte("bb"), TypeProduct, ProductTTL)
	s.Set(ctx, CategoriesKey(), []byte("c"), TypeCategories, CategoryTTL)

	stats := s.Stats(ctx)

	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 2, stats.ByType[TypeProduct])
	assert.Equal(t, 1, stats.ByType[TypeCategories])
	assert.Greater(t, stats.ApproxBytes, int64(0))
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, ProductTTL, TTLFor(TypeProducts))
	assert.Equal(t, ProductTTL, TTLFor(TypeProduct))
	assert.Equal(t, CategoryTTL, TTLFor(TypeCategories))
	assert.Equal(t, DefaultTTL, TTLFor(TypeOther))
}
