package main

import (
	"context"
	"log"
	"time"

	"freight-rater/internal/core/cache"
	"freight-rater/internal/core/config"
	"freight-rater/internal/core/db"
	"freight-rater/internal/core/logger"
	"freight-rater/internal/core/server"
	"freight-rater/internal/features/quoting/adapters"
	"freight-rater/internal/features/quoting/handler"
	"freight-rater/internal/features/quoting/ports"
	"freight-rater/internal/features/quoting/service"

	"go.uber.org/zap"
)

// @title Freight Rater API
// @version 1.0
// @description LTL freight quoting: density classification, distance banding, tiered rate lookup, and external carrier rates with local fallback.
// @contact.name API Support
// @contact.email support@freightrater.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	// Reference-table store; verified reachable before serving.
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		l.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		l.Fatal("Database health check failed", zap.Error(err))
	}
	l.Info("Database connection verified")

	var classRepo ports.ClassTableRepository = adapters.NewPostgresClassTableRepository(pool)
	var priceRepo ports.PriceTableRepository = adapters.NewPostgresPriceTableRepository(pool)
	warehouseRepo := adapters.NewPostgresWarehouseRepository(pool)
	discountRepo := adapters.NewPostgresDiscountRepository(pool)

	// Optional read-through cache for the hot reference tables.
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Failed to create Redis cache", zap.Error(err))
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			l.Fatal("Redis health check failed", zap.Error(err))
		}
		l.Info("Redis connection verified")

		ttl := time.Duration(cfg.Redis.ReferenceTTLSeconds) * time.Second
		classRepo = adapters.NewCachedClassTableRepository(classRepo, redisCache, ttl)
		priceRepo = adapters.NewCachedPriceTableRepository(priceRepo, redisCache, ttl)
	}

	mapsAdapter, err := adapters.NewGoogleMapsAdapter(cfg.Maps.APIKey)
	if err != nil {
		l.Fatal("Failed to create maps client", zap.Error(err))
	}

	var rateProvider ports.RateProvider
	if cfg.Freightcom.Enabled() {
		rateProvider = adapters.NewFreightcomAdapter(cfg.Freightcom)
		l.Info("External rate provider enabled", zap.String("url", cfg.Freightcom.URL))
	}

	quoteSvc := service.NewQuoteService(
		service.Repositories{
			Classes:    classRepo,
			Prices:     priceRepo,
			Warehouses: warehouseRepo,
			Discounts:  discountRepo,
		},
		mapsAdapter,
		rateProvider,
		service.Options{
			ChannelOrigins: cfg.Quote.ChannelOrigins(),
			Currency:       cfg.Quote.Currency,
		},
	)
	quoteHdl := handler.NewQuoteHandler(quoteSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/shipping/quotes", quoteHdl.CalculateShipping)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
