package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nschafer/dugout/internal/api"
	"github.com/nschafer/dugout/internal/api/handlers"
	"github.com/nschafer/dugout/internal/api/middleware"
	"github.com/nschafer/dugout/internal/providers"
	"github.com/nschafer/dugout/internal/services"
	"github.com/nschafer/dugout/internal/store"
	"github.com/nschafer/dugout/pkg/config"
	"github.com/nschafer/dugout/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Connect to the historical ledger
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis; the live snapshot cache is optional, so a
	// missing Redis downgrades to uncached fetches instead of refusing
	// to boot.
	var cacheService *services.CacheService
	if opt, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logrus.Warnf("Invalid Redis URL, running without cache: %v", err)
	} else {
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Warnf("Redis unreachable, running without cache: %v", err)
		} else {
			defer redisClient.Close()
			cacheService = services.NewCacheService(redisClient)
		}
	}

	// Initialize the live stats pipeline
	leaderboardClient := providers.NewLeaderboardClient(
		cfg.LiveBaseURL,
		cfg.LiveUserAgent,
		cfg.ExternalAPITimeout,
		cfg.LiveRateLimit,
		cfg.CircuitBreakerThreshold,
		logger,
	)
	liveSource := services.NewCachedLeaderboard(leaderboardClient, cacheService, cfg.LiveCacheTTL, logger)

	if cfg.EnableBackgroundJobs {
		prewarm := services.NewPrewarmService(liveSource, cfg.Season, cfg.LivePrewarmSchedule, logger)
		if err := prewarm.Start(); err != nil {
			logrus.Errorf("Failed to start prewarm service: %v", err)
		}
		defer prewarm.Stop()
	}

	repo := store.NewRepository(db)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, repo, liveSource, cfg, logger)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
