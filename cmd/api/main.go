package main

import (
	"fmt"
	"net/http"
	"os"

	"refdata/internal/config"
	"refdata/internal/database"
	"refdata/internal/handlers"
	"refdata/internal/logger"
	"refdata/internal/marketdata"
	"refdata/internal/middleware"
	"refdata/internal/repositories"
	"refdata/internal/services"
	"refdata/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "refdata/internal/docs" // Import swagger docs
)

// @title           Refdata API
// @version         1.0
// @description     Refdata tracks financial instruments, the exchanges they trade on, and their listings, and syncs reference data from an external market-data source.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared API key for admin endpoints.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize repositories
	db := dbManager.DB()
	assetRepo := repositories.NewAssetRepository(db)
	exchangeRepo := repositories.NewExchangeRepository(db)
	listingRepo := repositories.NewListingRepository(db)

	// Initialize services
	assetService := services.NewAssetService(assetRepo)
	exchangeService := services.NewExchangeService(exchangeRepo)
	listingService := services.NewListingService(listingRepo, assetRepo, exchangeRepo)
	syncService := services.NewSyncService(
		assetRepo, exchangeRepo, listingRepo,
		marketdata.NewYahooProvider(),
		marketdata.NewCodeMapper(nil),
	)

	// Initialize handlers
	assetHandler := handlers.NewAssetHandler(assetService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService)
	listingHandler := handlers.NewListingHandler(listingService)
	adminHandler := handlers.NewAdminHandler(syncService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Asset routes
	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)

	// Exchange routes
	exchanges := v1.Group("/exchanges")
	exchanges.POST("", exchangeHandler.CreateExchange)
	exchanges.GET("", exchangeHandler.ListExchanges)
	exchanges.GET("/:id", exchangeHandler.GetExchange)

	// Listing routes
	listings := v1.Group("/listings")
	listings.POST("", listingHandler.CreateListing)
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)
	listings.GET("/asset/:asset_id", listingHandler.GetListingsByAsset)

	// Admin routes (API-key protected)
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(appConfig.AdminAPIKey))
	admin.POST("/sync", adminHandler.TriggerSync)

	log.Infof("Starting refdata server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
