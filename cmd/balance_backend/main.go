package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/balance_ledger/internal/core/services"
	"github.com/SscSPs/balance_ledger/internal/handlers"
	"github.com/SscSPs/balance_ledger/internal/middleware"
	"github.com/SscSPs/balance_ledger/internal/platform/config"
	"github.com/SscSPs/balance_ledger/internal/platform/rates"
	"github.com/SscSPs/balance_ledger/internal/platform/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// @title Balance Ledger API
// @version 1.0
// @description Running balances, transfers and point-in-time totals.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalogue, err := rates.Load(cfg.RatesFile, cfg.BaseCurrency)
	if err != nil {
		logger.Error("Failed to load currency catalogue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStore, err := storage.Open(context.Background(), cfg, logger, true)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	serviceContainer, err := services.NewServiceContainer(cfg, repos, services.Catalogue{
		Currencies: catalogue.Currencies,
		Rates:      catalogue.Rates,
	})
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimit(rateLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}
}
