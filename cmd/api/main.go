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

	"github.com/strandshq/strands-api/internal/cache"
	"github.com/strandshq/strands-api/internal/config"
	"github.com/strandshq/strands-api/internal/database"
	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/handler"
	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
	"github.com/strandshq/strands-api/internal/worker"
)

// main is the application entrypoint for the Strands admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting strands api")

	utils.SetJWTSecret(cfg.JWTSecret)

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

	// 4. Document store, change fanout, and live query watcher
	notifier := cache.NewRedisNotifier(redisClient)
	defer notifier.Close()
	store := docstore.NewStore(db, notifier)
	watcher := docstore.NewWatcher(store, notifier)
	defer watcher.Close()

	// 5. Initialize repositories
	salonRepo := repository.NewSalonRepository(store)
	managerRepo := repository.NewManagerRepository(store)
	stylistRepo := repository.NewStylistRepository(store)
	productRepo := repository.NewProductRepository(store)
	saleRepo := repository.NewSaleRepository(store)
	clientRepo := repository.NewClientRepository(store)
	recommendationRepo := repository.NewRecommendationRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)

	// 6. Initialize services
	authSvc := service.NewAuthService(managerRepo)
	seedSvc := service.NewSeedService(store, service.DefaultFixtures(), cfg.Seed.RandomSeed)
	exportSvc := service.NewExportService(store)
	purgeSvc := service.NewPurgeService(store)
	mediaSvc := service.NewMediaService(cfg.Media)
	statsCache := cache.NewStatsCache(redisClient, cfg.Worker.StatsInterval)
	statsSvc := service.NewStatsService(salonRepo, managerRepo, stylistRepo, productRepo, saleRepo, recommendationRepo, statsCache)

	// 6a. Bootstrap the super-admin so a fresh deployment is administrable
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authSvc.EnsureSuperAdmin(bootCtx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Error().Err(err).Msg("super-admin bootstrap failed")
	}
	bootCancel()

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:         handler.NewHealthHandler(db, watcher),
		Auth:           handler.NewAuthHandler(authSvc),
		Salon:          handler.NewSalonHandler(salonRepo),
		Manager:        handler.NewManagerHandler(managerRepo, authSvc),
		Stylist:        handler.NewStylistHandler(stylistRepo),
		Product:        handler.NewProductHandler(productRepo),
		Sale:           handler.NewSaleHandler(saleRepo),
		Client:         handler.NewClientHandler(clientRepo),
		Recommendation: handler.NewRecommendationHandler(recommendationRepo),
		Settings:       handler.NewSettingsHandler(settingsRepo),
		Stream:         handler.NewStreamHandler(watcher),
		Dashboard:      handler.NewDashboardHandler(statsSvc),
		Seed:           handler.NewSeedHandler(seedSvc),
		Export:         handler.NewExportHandler(exportSvc),
		Purge:          handler.NewPurgeHandler(purgeSvc),
		Media:          handler.NewMediaHandler(mediaSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.ExtraHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewStatsWorker(statsSvc, cfg.Worker.StatsInterval).Start(ctx)

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
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Salon          *handler.SalonHandler
	Manager        *handler.ManagerHandler
	Stylist        *handler.StylistHandler
	Product        *handler.ProductHandler
	Sale           *handler.SaleHandler
	Client         *handler.ClientHandler
	Recommendation *handler.RecommendationHandler
	Settings       *handler.SettingsHandler
	Stream         *handler.StreamHandler
	Dashboard      *handler.DashboardHandler
	Seed           *handler.SeedHandler
	Export         *handler.ExportHandler
	Purge          *handler.PurgeHandler
	Media          *handler.MediaHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Authenticated routes: JWT first, then per-request tenant scope.
	v1 := router.Group("/v1")
	v1.Use(jwtMiddleware.Handle())
	v1.Use(middleware.ScopeMiddleware())
	{
		// Live query subscriptions (SSE)
		v1.GET("/stream/:collection", handlers.Stream.Stream)

		// Salon directory
		v1.GET("/salons", middleware.RequireSuperAdmin(), handlers.Salon.List)
		v1.POST("/salons", middleware.RequireSuperAdmin(), handlers.Salon.Create)
		v1.GET("/salons/:id", handlers.Salon.Get)
		v1.PATCH("/salons/:id", middleware.RequireWritableScope(), handlers.Salon.Update)
		v1.DELETE("/salons/:id", middleware.RequireSuperAdmin(), handlers.Salon.Delete)

		// Manager directory (super-admin)
		managers := v1.Group("/managers", middleware.RequireSuperAdmin())
		{
			managers.GET("", handlers.Manager.List)
			managers.POST("", handlers.Manager.Create)
			managers.GET("/:id", handlers.Manager.Get)
			managers.PATCH("/:id", handlers.Manager.Update)
			managers.DELETE("/:id", handlers.Manager.Delete)
		}

		// Tenant-scoped collections
		v1.GET("/stylists", handlers.Stylist.List)
		v1.POST("/stylists", middleware.RequireWritableScope(), handlers.Stylist.Create)
		v1.GET("/stylists/:stylistId", handlers.Stylist.Get)
		v1.PATCH("/stylists/:stylistId", middleware.RequireWritableScope(), handlers.Stylist.Update)
		v1.DELETE("/stylists/:stylistId", middleware.RequireWritableScope(), handlers.Stylist.Delete)

		v1.GET("/products", handlers.Product.List)
		v1.POST("/products", middleware.RequireWritableScope(), handlers.Product.Create)
		v1.GET("/products/:id", handlers.Product.Get)
		v1.PATCH("/products/:id", middleware.RequireWritableScope(), handlers.Product.Update)
		v1.DELETE("/products/:id", middleware.RequireWritableScope(), handlers.Product.Delete)

		// Sales are immutable: no update route.
		v1.GET("/sales", handlers.Sale.List)
		v1.POST("/sales", middleware.RequireWritableScope(), handlers.Sale.Create)
		v1.GET("/sales/:id", handlers.Sale.Get)
		v1.DELETE("/sales/:id", middleware.RequireWritableScope(), handlers.Sale.Delete)

		// Nested under a stylist
		v1.GET("/stylists/:stylistId/clients", handlers.Client.List)
		v1.POST("/stylists/:stylistId/clients", middleware.RequireWritableScope(), handlers.Client.Create)
		v1.GET("/stylists/:stylistId/clients/:id", handlers.Client.Get)
		v1.PATCH("/stylists/:stylistId/clients/:id", middleware.RequireWritableScope(), handlers.Client.Update)
		v1.DELETE("/stylists/:stylistId/clients/:id", middleware.RequireWritableScope(), handlers.Client.Delete)

		v1.GET("/stylists/:stylistId/recommendations", handlers.Recommendation.List)
		v1.POST("/stylists/:stylistId/recommendations", middleware.RequireWritableScope(), handlers.Recommendation.Create)
		v1.DELETE("/stylists/:stylistId/recommendations/:id", middleware.RequireWritableScope(), handlers.Recommendation.Delete)

		// Configuration documents
		v1.GET("/settings/platform", middleware.RequireSuperAdmin(), handlers.Settings.GetPlatformConfig)
		v1.PUT("/settings/platform", middleware.RequireSuperAdmin(), handlers.Settings.PutPlatformConfig)
		v1.GET("/settings/app", handlers.Settings.GetAppConfig)
		v1.PUT("/settings/app", middleware.RequireWritableScope(), handlers.Settings.PutAppConfig)
		v1.GET("/settings/profile", handlers.Settings.GetProfile)
		v1.PUT("/settings/profile", middleware.RequireWritableScope(), handlers.Settings.PutProfile)

		// Media upload proxy
		v1.POST("/media/upload", handlers.Media.Upload)

		// Platform dashboard (super-admin)
		v1.GET("/dashboard/stats", middleware.RequireSuperAdmin(), handlers.Dashboard.Stats)
		v1.POST("/dashboard/stats/refresh", middleware.RequireSuperAdmin(), handlers.Dashboard.Refresh)

		// Destructive admin tooling (super-admin)
		admin := v1.Group("/admin", middleware.RequireSuperAdmin())
		{
			admin.POST("/seed", handlers.Seed.Seed)
			admin.GET("/export", handlers.Export.Export)
			admin.GET("/export/targets", handlers.Export.Targets)
			admin.POST("/purge", handlers.Purge.Purge)
		}
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

	// Run migrations
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
