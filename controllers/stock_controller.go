package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

type StockController struct {
	stock  *services.StockService
	alerts *services.AlertService
}

func NewStockController(stock *services.StockService, alerts *services.AlertService) *StockController {
	return &StockController{stock: stock, alerts: alerts}
}

// Adjust handles PUT {admin}/stock/:id, setting a product's stock to an
// absolute value.
func (sc *StockController) Adjust(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := sc.stock.AdjustStock(c, id, *req.NewStock, req.Reason, "admin")
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// History handles GET {admin}/stock/:id/history.
func (sc *StockController) History(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 0)
	entries, err := sc.stock.GetStockHistory(c, id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entries)
}

// AllHistory handles GET {admin}/stock/history across all products.
func (sc *StockController) AllHistory(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)

	entries, total, err := sc.stock.GetAllStockHistory(c, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"history": entries,
		"meta":    paginationMeta(page, limit, total),
	})
}

// Alerts handles GET {admin}/stock/alerts. With notify=true, one email per
// alert is dispatched to the configured recipient.
func (sc *StockController) Alerts(c *gin.Context) {
	notify := c.Query("notify") == "true"

	alerts, err := sc.alerts.CheckLowStockAlerts(c, notify)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"alerts":   alerts,
		"count":    len(alerts),
		"notified": notify,
	})
}
