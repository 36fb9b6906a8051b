// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/api"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/cache"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/config"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository/postgres"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/service"
	"github.com/gustavoamaro/rocagem-ops/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	areaRepo := postgres.NewAreaRepository(db)
	configRepo := postgres.NewConfigRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	// Initialize dashboard cache (noop unless CACHE_ENABLED)
	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, running without cache")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	// Initialize services
	areaService := service.NewAreaService(areaRepo, dashboardRepo, dashboardCache)
	scheduleService := service.NewScheduleService(areaRepo, configRepo, dashboardCache, cfg.DefaultRates())

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		AreaService:     areaService,
		ScheduleService: scheduleService,
	}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
