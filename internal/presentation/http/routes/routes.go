package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adelgadoq/mystock-api/internal/config"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/handler"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	SalesOrder    *handler.SalesOrderHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Session       *handler.SessionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
	Log *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerProductRoutes(v1, h)
		registerCategoryRoutes(v1, h)
		registerSalesOrderRoutes(v1, h)
		registerPurchaseOrderRoutes(v1, h)
		registerSessionRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.POST("/margin-preview", h.Product.MarginPreview)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.GET("/:id/margin", h.Product.Margin)
	}
}

func registerCategoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerSalesOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/sales-orders")
	{
		orders.GET("", h.SalesOrder.List)
		orders.GET("/:id", h.SalesOrder.Get)
		orders.DELETE("/:id", h.SalesOrder.Delete)
		orders.PATCH("/:id/status", h.SalesOrder.UpdateStatus)
		orders.POST("/:id/lines", h.SalesOrder.AddLine)
		orders.PATCH("/:id/lines/:lineId", h.SalesOrder.UpdateLineQuantity)
		orders.DELETE("/:id/lines/:lineId", h.SalesOrder.RemoveLine)
	}
}

func registerPurchaseOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/purchase-orders")
	{
		orders.GET("", h.PurchaseOrder.List)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.DELETE("/:id", h.PurchaseOrder.Delete)
		orders.PATCH("/:id/status", h.PurchaseOrder.UpdateStatus)
		orders.POST("/:id/lines", h.PurchaseOrder.AddLine)
		orders.DELETE("/:id/lines/:lineId", h.PurchaseOrder.RemoveLine)
		orders.POST("/:id/lines/:lineId/receive", h.PurchaseOrder.ReceiveLine)
	}
}

func registerSessionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.Session.Create)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.Close)
		sessions.GET("/:id/validate", h.Session.Validate)
		sessions.POST("/:id/submit/sales", h.Session.SubmitSales)
		sessions.POST("/:id/submit/purchase", h.Session.SubmitPurchase)

		sessions.POST("/:id/lines", h.Session.AddLine)
		sessions.DELETE("/:id/lines/:lineId", h.Session.RemoveLine)
		sessions.PUT("/:id/lines/:lineId/product", h.Session.SelectProduct)
		sessions.PUT("/:id/lines/:lineId/quantity", h.Session.SetQuantity)
		sessions.PUT("/:id/lines/:lineId/unit-price", h.Session.SetUnitPrice)
		sessions.PUT("/:id/lines/:lineId/discount", h.Session.SetLineDiscount)
		sessions.PUT("/:id/lines/:lineId/tax-rate", h.Session.SetTaxRate)
		sessions.PUT("/:id/lines/:lineId/category-filter", h.Session.ApplyCategoryFilter)
	}
}
