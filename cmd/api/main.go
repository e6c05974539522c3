package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/retailops/pricing-api/internal/cache"
	"github.com/retailops/pricing-api/internal/config"
	"github.com/retailops/pricing-api/internal/database"
	"github.com/retailops/pricing-api/internal/handler"
	"github.com/retailops/pricing-api/internal/middleware"
	"github.com/retailops/pricing-api/internal/pricing"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/service"
	"github.com/retailops/pricing-api/internal/worker"
)

// main is the application entrypoint for the pricing API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting pricing api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	tierRepo := repository.NewTierRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 5. Build the engine over an empty snapshot, then seed it under the
	// shared catalog generation so quote keys line up across replicas.
	catalog := pricing.NewSnapshotCatalog(nil)
	engine := pricing.NewEngine(catalog, cfg.Pricing.QuoteValidity)
	quoteCache := cache.NewQuoteCache(redisClient, cfg.Pricing.QuoteCacheTTL)
	catalogVersions := cache.NewCatalogVersions(redisClient)

	// 6. Initialize services
	authSvc := service.NewAuthService(clientRepo)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)
	clientSvc := service.NewClientService(clientRepo)
	productSvc := service.NewProductService(productRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	pricingSvc := service.NewPricingService(productRepo, customerRepo, tierRepo, catalog, engine, quoteCache, catalogVersions)
	tierSvc := service.NewTierService(tierRepo, pricingSvc)

	tierCount, err := pricingSvc.ReloadCatalog(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("initial catalog load failed")
		fmt.Fprintf(os.Stderr, "initial catalog load failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Int("tiers", tierCount).Msg("pricing catalog loaded")

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db, redisClient, catalog),
		Pricing:  handler.NewPricingHandler(pricingSvc),
		Product:  handler.NewProductHandler(productSvc),
		Customer: handler.NewCustomerHandler(customerSvc),
		Tier:     handler.NewTierHandler(tierSvc),
		Client:   handler.NewClientHandler(clientSvc),
		Auth:     handler.NewAuthHandler(adminAuthSvc),
	}

	// 8. Initialize middleware
	authMw := middleware.NewAuthMiddleware(authSvc)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, authMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewCatalogWorker(pricingSvc, cfg.Worker.CatalogRefreshInterval).Start(ctx)
	go worker.NewQuoteSweepWorker(quoteCache, cfg.Worker.QuoteSweepInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Pricing  *handler.PricingHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Tier     *handler.TierHandler
	Client   *handler.ClientHandler
	Auth     *handler.AuthHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Pricing routes (protected with client API key)
	pricingGroup := router.Group("/v1/pricing")
	pricingGroup.Use(authMiddleware.Handle())
	{
		pricingGroup.POST("/quote", handlers.Pricing.CreateQuote)
		pricingGroup.POST("/quote/batch", handlers.Pricing.CreateQuoteBatch)
		pricingGroup.GET("/tiers/applicable", handlers.Pricing.GetApplicableTiers)
	}

	// Catalog read routes (protected with client API key)
	catalogGroup := router.Group("/v1")
	catalogGroup.Use(authMiddleware.Handle())
	{
		catalogGroup.GET("/products", handlers.Product.GetProducts)
		catalogGroup.GET("/products/categories", handlers.Product.GetCategories)
		catalogGroup.GET("/products/brands", handlers.Product.GetBrands)
		catalogGroup.GET("/products/:skuCode", handlers.Product.GetProduct)
		catalogGroup.GET("/customers", handlers.Customer.GetCustomers)
		catalogGroup.GET("/customers/:code", handlers.Customer.GetCustomer)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(middleware.JWTMiddleware())
	{
		// Tier Management
		admin.GET("/tiers", handlers.Tier.ListTiers)
		admin.POST("/tiers", handlers.Tier.CreateTier)
		admin.GET("/tiers/:id", handlers.Tier.GetTier)
		admin.PUT("/tiers/:id", handlers.Tier.UpdateTier)
		admin.PATCH("/tiers/:id/status", handlers.Tier.SetTierStatus)
		admin.DELETE("/tiers/:id", handlers.Tier.DeleteTier)

		// Product Management
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)

		// Customer Management
		admin.POST("/customers", handlers.Customer.CreateCustomer)
		admin.PUT("/customers/:id", handlers.Customer.UpdateCustomer)
		admin.DELETE("/customers/:id", handlers.Customer.DeleteCustomer)

		// Client Management
		admin.POST("/clients", handlers.Client.CreateClient)
		admin.GET("/clients", handlers.Client.ListClients)
		admin.GET("/clients/:id", handlers.Client.GetClient)
		admin.PUT("/clients/:id", handlers.Client.UpdateClient)
		admin.POST("/clients/:id/regenerate", handlers.Client.RegenerateKeys)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
