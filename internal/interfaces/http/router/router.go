// Package router wires handlers, middleware, and route groups into the
// gin engine.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retail/backend/internal/infrastructure/auth"
	"github.com/retail/backend/internal/infrastructure/config"
	"github.com/retail/backend/internal/infrastructure/logger"
	"github.com/retail/backend/internal/interfaces/http/handler"
	"github.com/retail/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers collects the handlers the router mounts
type Handlers struct {
	Product  *handler.ProductHandler
	Stock    *handler.StockHandler
	Order    *handler.OrderHandler
	Location *handler.LocationHandler
	Shipping *handler.ShippingHandler
}

// Config holds router dependencies
type Config struct {
	Handlers   Handlers
	JWTService *auth.JWTService
	HTTP       config.HTTPConfig
	Env        string
	Logger     *zap.Logger
}

// New builds the gin engine with the full middleware stack and all routes.
//
// Route access is split three ways: the catalog read side and shipping
// quotes are public, order operations require a customer token, and
// everything that mutates stock, catalog, or locations is admin only.
func New(cfg Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.Secure())
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	middleware.SetupValidator()

	engine.GET("/health", healthCheck)

	api := engine.Group("/api/v1")
	api.GET("/health", healthCheck)

	h := cfg.Handlers

	// Public catalog reads and shipping quotes
	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/products/:id/availability", h.Shipping.CheckAvailability)
	api.POST("/shipping/quote", h.Shipping.Quote)

	// Customer facing order operations
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTService))
	{
		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders", h.Order.List)
		authed.GET("/orders/:id", h.Order.Get)
		authed.POST("/orders/:id/payment", h.Order.UploadPayment)
		authed.POST("/orders/:id/cancel", h.Order.Cancel)
	}

	// Administrative operations
	admin := api.Group("")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTService), middleware.RequireAdmin())
	{
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.GET("/products/:id/allocations", h.Stock.GetProductAllocations)

		admin.POST("/stock/update", h.Stock.UpdateStock)
		admin.POST("/stock/transfer", h.Stock.Transfer)
		admin.POST("/stock/availability", h.Stock.SetAvailability)

		admin.POST("/locations", h.Location.CreateSalesLocation)
		admin.GET("/locations", h.Location.ListSalesLocations)
		admin.GET("/locations/:id", h.Location.GetSalesLocation)
		admin.PUT("/locations/:id", h.Location.UpdateSalesLocation)
		admin.DELETE("/locations/:id", h.Location.DeleteSalesLocation)
		admin.GET("/locations/:id/stock", h.Stock.ListLocationStock)
		admin.GET("/locations/:id/stock/low", h.Stock.ListLowStock)
		admin.DELETE("/locations/:id/stock/:product_id", h.Stock.RemoveAllocation)

		admin.POST("/delivery-addresses", h.Location.CreateDeliveryAddress)
		admin.GET("/delivery-addresses", h.Location.ListDeliveryAddresses)
		admin.GET("/delivery-addresses/:id", h.Location.GetDeliveryAddress)
		admin.PUT("/delivery-addresses/:id", h.Location.UpdateDeliveryAddress)
		admin.DELETE("/delivery-addresses/:id", h.Location.DeleteDeliveryAddress)

		admin.POST("/orders/:id/confirm", h.Order.Confirm)
		admin.POST("/orders/:id/tracking", h.Order.AddTracking)
		admin.POST("/orders/:id/delivered", h.Order.MarkDelivered)
		admin.PUT("/orders/:id/status", h.Order.UpdateStatus)
	}

	return engine
}

// corsConfig maps HTTP config onto the CORS middleware, keeping the
// middleware defaults for anything unset
func corsConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(httpCfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = httpCfg.CORSAllowOrigins
	}
	if len(httpCfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return cors
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
