package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/controllers"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/middleware"
)

// Controllers bundles everything the router needs.
type Controllers struct {
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Orders     *controllers.OrderController
	Stock      *controllers.StockController
	Cache      *controllers.CacheController
	Areas      *controllers.AreaController
	Auth       *controllers.AuthController
}

// Register wires the public storefront routes and the back office under
// adminPrefix. The admin prefix is deliberately not discoverable: everything
// under it except login requires a valid session, and failures return 404.
func Register(r *gin.Engine, ctrl Controllers, sessions *middleware.SessionManager, adminPrefix string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Storefront
	r.GET("/products", ctrl.Products.List)
	r.GET("/products/:slug", ctrl.Products.GetBySlug)
	r.GET("/categories", ctrl.Categories.List)
	r.GET("/categories/:slug", ctrl.Categories.GetBySlug)
	r.GET("/areas", ctrl.Areas.ListPublic)
	r.POST("/checkout", ctrl.Orders.Checkout)

	// Back office
	admin := r.Group(adminPrefix)
	admin.POST("/login", ctrl.Auth.Login)

	authed := admin.Group("", middleware.RequireAdmin(sessions))
	authed.POST("/logout", ctrl.Auth.Logout)
	authed.GET("/session", ctrl.Auth.Session)

	authed.POST("/products", ctrl.Products.Create)
	authed.PUT("/products/:id", ctrl.Products.Update)
	authed.DELETE("/products/:id", ctrl.Products.Delete)

	authed.POST("/categories", ctrl.Categories.Create)
	authed.PUT("/categories/:id", ctrl.Categories.Update)
	authed.DELETE("/categories/:id", ctrl.Categories.Delete)

	authed.GET("/orders", ctrl.Orders.List)
	authed.GET("/orders/:id", ctrl.Orders.Get)
	authed.PUT("/orders/:id/status", ctrl.Orders.UpdateStatus)

	authed.PUT("/stock/:id", ctrl.Stock.Adjust)
	authed.GET("/stock/:id/history", ctrl.Stock.History)
	authed.GET("/stock/history", ctrl.Stock.AllHistory)
	authed.GET("/stock/alerts", ctrl.Stock.Alerts)

	authed.GET("/areas", ctrl.Areas.ListAll)
	authed.POST("/areas", ctrl.Areas.Create)
	authed.PUT("/areas/:id", ctrl.Areas.Update)
	authed.DELETE("/areas/:id", ctrl.Areas.Delete)

	authed.GET("/cache/stats", ctrl.Cache.Stats)
	authed.POST("/cache/invalidate", ctrl.Cache.Invalidate)
	authed.POST("/cache/warm", ctrl.Cache.Warm)
}
