package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stockroom/internal/caching"
	"stockroom/internal/config"
	"stockroom/internal/handlers"
	"stockroom/internal/jobs"
	"stockroom/internal/jobs/background"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedUsers(ctx, pool); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	// Archive storage
	archiveSvc, err := services.NewMinioArchiveService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize archive service: %v", err)
	}
	if err := archiveSvc.EnsureBucketExists(ctx); err != nil {
		log.Printf("WARN: Failed to ensure archive bucket exists: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	requestRepo := repositories.NewRequestRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	txLogRepo := repositories.NewTransactionLogRepo(pool)
	transactor := repositories.NewTransactor(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Services
	txLogSvc := services.NewTransactionLogService(txLogRepo)
	authSvc := services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	inventorySvc := services.NewInventoryService(itemRepo, transactor, cacheSvc, txLogSvc)
	requestSvc := services.NewRequestService(requestRepo, itemRepo, transactor, cacheSvc, txLogSvc)
	orderSvc := services.NewOrderService(orderRepo, itemRepo, userRepo, transactor, cacheSvc, txLogSvc)
	importSvc := services.NewImportService(itemRepo, transactor, cacheSvc, archiveSvc, txLogSvc)
	exportSvc := services.NewExportService(requestRepo, orderRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	itemHandlers := handlers.NewItemHandlers(inventorySvc, importSvc)
	requestHandlers := handlers.NewRequestHandlers(requestSvc, exportSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, exportSvc)
	transactionHandlers := handlers.NewTransactionHandlers(txLogSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	alertSvc := jobs.NewInventoryAlertService(itemRepo)
	scheduler, err := background.NewJobScheduler(alertSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	versionMiddleware := middleware.NewVersionMiddleware()
	v1 := versionMiddleware.VersionRoute(e, "v1")

	// Authentication routes (no JWT required for login)
	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(userRepo, cfg.JWTSecret))

	protected.GET("/me", authHandlers.Me)

	// Inventory routes
	protected.GET("/items", itemHandlers.List)
	protected.GET("/items/low-stock", itemHandlers.LowStock, middleware.RequireRole(models.RoleAdmin))
	protected.GET("/items/:id", itemHandlers.Get)
	protected.GET("/items/:id/stock", itemHandlers.Stock)
	protected.PATCH("/items/:id/stock", itemHandlers.AdjustStock, middleware.RequireRole(models.RoleAdmin))
	protected.POST("/items/import", itemHandlers.Import, middleware.RequireRole(models.RoleAdmin))
	protected.GET("/items/import/latest", itemHandlers.LastImport, middleware.RequireRole(models.RoleAdmin))

	// Employee request routes
	protected.POST("/requests", requestHandlers.Submit, middleware.RequireRole(models.RoleEmployee))
	protected.GET("/requests", requestHandlers.List, middleware.RequireRole(models.RoleAdmin, models.RoleEmployee))
	protected.GET("/requests/export", requestHandlers.Export, middleware.RequireRole(models.RoleAdmin, models.RoleEmployee))
	protected.GET("/requests/:id", requestHandlers.Get, middleware.RequireRole(models.RoleAdmin, models.RoleEmployee))
	protected.PATCH("/requests/:id", requestHandlers.Decide, middleware.RequireRole(models.RoleAdmin))
	protected.DELETE("/requests", requestHandlers.Clear, middleware.RequireRole(models.RoleAdmin))

	// Supplier order routes
	protected.POST("/orders", orderHandlers.Place, middleware.RequireRole(models.RoleAdmin))
	protected.GET("/orders", orderHandlers.List, middleware.RequireRole(models.RoleAdmin, models.RoleSupplier))
	protected.GET("/orders/export", orderHandlers.Export, middleware.RequireRole(models.RoleAdmin, models.RoleSupplier))
	protected.GET("/orders/:id", orderHandlers.Get, middleware.RequireRole(models.RoleAdmin, models.RoleSupplier))
	protected.PATCH("/orders/:id", orderHandlers.Advance, middleware.RequireRole(models.RoleSupplier))

	// Audit trail
	protected.GET("/transactions", transactionHandlers.List, middleware.RequireRole(models.RoleAdmin))

	log.Printf("Stockroom server v%s starting on port %s", version, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
