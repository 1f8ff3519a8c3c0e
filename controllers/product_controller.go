package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/cache"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List handles GET /products with page, perPage, category, search and
// featured query parameters.
func (pc *ProductController) List(c *gin.Context) {
	params := services.ListProductsParams{
		Page:         queryInt(c, "page", 1),
		PerPage:      queryInt(c, "perPage", cache.DefaultListPerPage),
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		params.Featured = &featured
	}

	payload, err := pc.products.List(c, params)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"products": payload.Products,
		"meta":     paginationMeta(params.Page, params.PerPage, payload.Total),
	})
}

// GetBySlug handles GET /products/:slug.
func (pc *ProductController) GetBySlug(c *gin.Context) {
	product, err := pc.products.GetBySlug(c, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, product)
}

// Create handles POST {admin}/products.
func (pc *ProductController) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := pc.products.Create(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, product)
}

// Update handles PUT {admin}/products/:id.
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := pc.products.Update(c, id, req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": true})
}

// Delete handles DELETE {admin}/products/:id. Products are soft-deleted.
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := pc.products.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
