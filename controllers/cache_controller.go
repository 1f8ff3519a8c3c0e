package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/cache"
)

type CacheController struct {
	store  cache.Store
	warmer *cache.Warmer
}

func NewCacheController(store cache.Store, warmer *cache.Warmer) *CacheController {
	return &CacheController{store: store, warmer: warmer}
}

// Stats handles GET {admin}/cache/stats.
func (cc *CacheController) Stats(c *gin.Context) {
	respondOK(c, http.StatusOK, cc.store.Stats(c))
}

// Invalidate handles POST {admin}/cache/invalidate. With a type query
// parameter only that type's entries are dropped, otherwise the whole cache
// is cleared.
func (cc *CacheController) Invalidate(c *gin.Context) {
	typ := c.Query("type")
	if typ == "" {
		cc.store.InvalidateAll(c)
		respondOK(c, http.StatusOK, gin.H{"invalidated": "all"})
		return
	}

	switch cache.Type(typ) {
	case cache.TypeProducts, cache.TypeProduct, cache.TypeCategories, cache.TypeCategory, cache.TypeOther:
	default:
		respondBadRequest(c, "Unknown cache type: "+typ)
		return
	}

	cc.store.InvalidateType(c, cache.Type(typ))
	respondOK(c, http.StatusOK, gin.H{"invalidated": typ})
}

// Warm handles POST {admin}/cache/warm, refilling the cache with first-page
// listings and per-entity entries.
func (cc *CacheController) Warm(c *gin.Context) {
	cc.warmer.WarmAll(c)
	respondOK(c, http.StatusOK, gin.H{"warmed": true})
}
