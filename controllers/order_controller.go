package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Checkout handles POST /checkout, the storefront's payment-less order
// placement.
func (oc *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := oc.orders.Checkout(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, order)
}

// List handles GET {admin}/orders with page, limit and status filters.
func (oc *OrderController) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	status := c.Query("status")

	orders, total, err := oc.orders.List(c, page, limit, status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"orders": orders,
		"meta":   paginationMeta(page, limit, total),
	})
}

// Get handles GET {admin}/orders/:id.
func (oc *OrderController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := oc.orders.Get(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// UpdateStatus handles PUT {admin}/orders/:id/status.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := oc.orders.UpdateStatus(c, id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": true})
}
