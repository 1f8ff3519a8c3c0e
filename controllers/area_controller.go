package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

type AreaController struct {
	areas *services.AreaService
}

func NewAreaController(areas *services.AreaService) *AreaController {
	return &AreaController{areas: areas}
}

// ListPublic handles GET /areas, returning only active areas for the
// storefront checkout form.
func (ac *AreaController) ListPublic(c *gin.Context) {
	areas, err := ac.areas.List(c, true)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, areas)
}

// ListAll handles GET {admin}/areas, including inactive areas.
func (ac *AreaController) ListAll(c *gin.Context) {
	areas, err := ac.areas.List(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, areas)
}

// Create handles POST {admin}/areas.
func (ac *AreaController) Create(c *gin.Context) {
	var req models.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	area, err := ac.areas.Create(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, area)
}

// Update handles PUT {admin}/areas/:id.
func (ac *AreaController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := ac.areas.Update(c, id, req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": true})
}

// Delete handles DELETE {admin}/areas/:id.
func (ac *AreaController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ac.areas.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
