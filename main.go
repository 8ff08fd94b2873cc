package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamcatalog/config"
	"streamcatalog/internal/catalog"
	"streamcatalog/internal/handler"
	"streamcatalog/internal/service"
	"streamcatalog/internal/storage"
	"streamcatalog/pkg/logger"
	"streamcatalog/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Stream Catalog Server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	// Initialize storage manager
	storageManager := storage.NewManager(&cfg.Storage)
	if err := storageManager.EnsureDownloadDir(); err != nil {
		logger.Logger.Fatal("Failed to create download directory", zap.Error(err))
	}
	storageManager.Start()
	defer storageManager.Stop()

	// Initialize services
	catalogBuilder := catalog.NewBuilder(cfg.Catalog)
	extractService := service.NewExtractService(
		cfg.Extractor.Host,
		cfg.Extractor.Port,
		cfg.Extractor.Timeout,
		catalogBuilder,
	)
	downloadService := service.NewDownloadService(
		cfg.Extractor.Host,
		cfg.Extractor.Port,
		cfg.Extractor.Timeout,
		storageManager,
	)

	quotaService := service.NewQuotaService(&cfg.Quota)
	defer quotaService.Stop()

	rateLimitService := service.NewRateLimitService(&cfg.RateLimit)
	defer rateLimitService.Stop()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(logger.GinLogger())

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimitMiddleware(rateLimitService))
		logger.Logger.Info("Rate limiting enabled", zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute))
	}

	if cfg.Quota.Enabled {
		router.Use(middleware.QuotaCheckMiddleware(quotaService))
		logger.Logger.Info("Quota limiting enabled", zap.Int64("daily_limit_mb", cfg.Quota.DailyLimitMB), zap.Int("reset_hour", cfg.Quota.ResetHour))
	}

	// API handlers
	catalogHandler := handler.NewCatalogHandler(extractService, cfg)
	downloadHandler := handler.NewDownloadHandler(downloadService, cfg, quotaService)

	// Routes
	api := router.Group("/api")
	{
		// Catalog retrieval
		api.POST("/formats", catalogHandler.GetFormats)

		// Downloads
		api.POST("/download", downloadHandler.StartDownload)
		api.GET("/download/:id", downloadHandler.GetFile)

		// Health check
		api.GET("/health", catalogHandler.HealthCheck)
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.Timeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.Timeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server stopped")
}
