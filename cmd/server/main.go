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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ourvoice/mgnrega-api/internal/config"
	"github.com/ourvoice/mgnrega-api/internal/database"
	"github.com/ourvoice/mgnrega-api/internal/handlers"
	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/middleware"
	"github.com/ourvoice/mgnrega-api/internal/repository"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting MGNREGA API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Apply schema migrations before serving traffic
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("Failed to run database migrations", err, nil)
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Metrics())

	// Register health check and observability routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repository and service layers
	districtRepo := repository.NewDistrictRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)
	reportRepo := repository.NewReportRepository(db)

	districtService := services.NewDistrictService(districtRepo, log)
	metricsService := services.NewMetricsService(metricsRepo, log)
	comparisonService := services.NewComparisonService(districtRepo, metricsRepo, log)
	reportService := services.NewReportService(reportRepo, log)

	// Initialize handlers
	districtHandler := handlers.NewDistrictHandler(districtService, cfg.App.DefaultState)
	metricsHandler := handlers.NewMetricsHandler(metricsService, cfg.App.HistoryMonths)
	comparisonHandler := handlers.NewComparisonHandler(comparisonService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Register API routes
	router.GET("/districts", districtHandler.List)
	router.POST("/districts", districtHandler.Locate)
	router.GET("/mgnrega-data", metricsHandler.Performance)
	router.POST("/mgnrega-data", metricsHandler.Sync)
	router.GET("/compare-districts", comparisonHandler.Compare)
	router.GET("/issue-reports", reportHandler.List)
	router.POST("/issue-reports", reportHandler.Submit)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
