package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flavr-travel/flavr-backend/config"
	"github.com/flavr-travel/flavr-backend/internal/app/controller"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/app/service"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/internal/db"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/flavr-travel/flavr-backend/internal/router"
	"github.com/flavr-travel/flavr-backend/internal/scheduler"
	"github.com/flavr-travel/flavr-backend/internal/storage"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/flavr-travel/flavr-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Flavr Admin Backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (seeds the bootstrap admin profile when needed)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it logout falls back to natural token expiry
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db.GetDB())
	destinationRepo := repository.NewDestinationRepository(db.GetDB())
	recommendationRepo := repository.NewRecommendationRepository(db.GetDB())
	personRepo := repository.NewPersonRepository(db.GetDB())
	blogPostRepo := repository.NewBlogPostRepository(db.GetDB())
	subscriberRepo := repository.NewSubscriberRepository(db.GetDB())

	// Central store: load everything once before serving
	store := cache.NewStore(destinationRepo, recommendationRepo, personRepo, blogPostRepo, subscriberRepo)
	if err := store.Refresh(); err != nil {
		logger.Fatal("Failed to load initial data", err)
	}

	// Initialize services
	authService := service.NewAuthService(
		profileRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	destinationService := service.NewDestinationService(destinationRepo, store)
	recommendationService := service.NewRecommendationService(recommendationRepo, store)
	personService := service.NewPersonService(personRepo, store)
	blogService := service.NewBlogService(blogPostRepo, store)
	subscriberService := service.NewSubscriberService(subscriberRepo, store)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	dashboardController := controller.NewDashboardController(store)
	destinationController := controller.NewDestinationController(destinationService)
	recommendationController := controller.NewRecommendationController(recommendationService)
	personController := controller.NewPersonController(personService)
	blogController := controller.NewBlogController(blogService)
	subscriberController := controller.NewSubscriberController(subscriberService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Periodic refresh picks up rows written outside the API
	if cfg.Scheduler.CacheRefreshSpec != "" {
		refreshScheduler := scheduler.NewCacheRefreshScheduler(store, cfg.Scheduler.CacheRefreshSpec)
		if err := refreshScheduler.Start(); err != nil {
			logger.Warn("Cache refresh scheduler not started", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer refreshScheduler.Stop()
		}
	}

	// Setup router
	r := router.NewRouter(
		authController,
		dashboardController,
		destinationController,
		recommendationController,
		personController,
		blogController,
		subscriberController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
