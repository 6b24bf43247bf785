package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stablecoin-payment-ledger/config"
	"stablecoin-payment-ledger/internal/adapter/custody"
	httpHandler "stablecoin-payment-ledger/internal/adapter/http/handler"
	pgStorage "stablecoin-payment-ledger/internal/adapter/storage/postgres"
	redisStorage "stablecoin-payment-ledger/internal/adapter/storage/redis"
	"stablecoin-payment-ledger/internal/core/domain"
	"stablecoin-payment-ledger/internal/core/ports"
	"stablecoin-payment-ledger/internal/ledger"
	"stablecoin-payment-ledger/internal/service"
	"stablecoin-payment-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Stablecoin Payment Ledger")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Custody service client (the external value-transfer interface)
	transferor := custody.New(cfg.Custody.BaseURL, cfg.Custody.SigningKey, cfg.Custody.Timeout, nil, log)

	// Event audit trail
	eventRepo := pgStorage.NewEventRepo(pool)

	// The ledger engine
	eng, err := ledger.New(ledger.Config{
		Owner:   domain.NormalizeAddress(cfg.Ledger.Owner),
		Custody: domain.NormalizeAddress(cfg.Ledger.Custody),
	}, transferor, eventRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ledger engine")
	}

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AdminSvc:       eng,
		MerchantSvc:    eng,
		PaymentSvc:     eng,
		WithdrawalSvc:  eng,
		QuerySvc:       eng,
		TokenSvc:       tokenSvc,
		HashSvc:        hashSvc,
		AdminKeyHash:   cfg.Admin.APIKeyHash,
		Events:         eventRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
