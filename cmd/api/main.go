package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adelgadoq/mystock-api/internal/application/service"
	"github.com/adelgadoq/mystock-api/internal/config"
	"github.com/adelgadoq/mystock-api/internal/infrastructure/database"
	"github.com/adelgadoq/mystock-api/internal/infrastructure/repository"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/handler"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	salesOrderRepo := repository.NewSalesOrderRepository(db)
	salesLineRepo := repository.NewSalesOrderLineRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	purchaseLineRepo := repository.NewPurchaseOrderLineRepository(db)

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	salesOrderService := service.NewSalesOrderService(salesOrderRepo, salesLineRepo, productRepo)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, purchaseLineRepo, productRepo)
	sessionService := service.NewSessionService(productRepo, categoryRepo, salesOrderService, purchaseOrderService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:       handler.NewProductHandler(productService),
		Category:      handler.NewCategoryHandler(categoryService),
		SalesOrder:    handler.NewSalesOrderHandler(salesOrderService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		Session:       handler.NewSessionHandler(sessionService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg: cfg,
		Log: log,
	})

	log.WithField("port", cfg.App.Port).Info("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
