package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// List handles GET /categories.
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.categories.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, categories)
}

// GetBySlug handles GET /categories/:slug.
func (cc *CategoryController) GetBySlug(c *gin.Context) {
	category, err := cc.categories.GetBySlug(c, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, category)
}

// Create handles POST {admin}/categories.
func (cc *CategoryController) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := cc.categories.Create(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, category)
}

// Update handles PUT {admin}/categories/:id.
func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := cc.categories.Update(c, id, req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": true})
}

// Delete handles DELETE {admin}/categories/:id. Blocked while products still
// reference the category.
func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := cc.categories.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
