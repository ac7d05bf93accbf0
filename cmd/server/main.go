package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iho/splitit/internal/adapter/http"
	"github.com/iho/splitit/internal/adapter/http/handler"
	"github.com/iho/splitit/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/splitit/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/splitit/internal/adapter/repository/redis"
	"github.com/iho/splitit/internal/infrastructure/config"
	"github.com/iho/splitit/internal/infrastructure/logger"
	"github.com/iho/splitit/internal/infrastructure/metrics"
	"github.com/iho/splitit/internal/infrastructure/postgres"
	"github.com/iho/splitit/internal/infrastructure/redis"
	"github.com/iho/splitit/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Run migrations
	migrationsPath := resolveMigrationsPath()
	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics registry
	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	occasionRepo := postgresRepo.NewOccasionRepository(pool)
	eventRepo := postgresRepo.NewEventRepository(pool)
	expenditureRepo := postgresRepo.NewExpenditureRepository(pool)
	splitRepo := postgresRepo.NewSplitRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	occasionUC := usecase.NewOccasionUseCase(occasionRepo, eventRepo, expenditureRepo, splitRepo, idGen)
	eventUC := usecase.NewEventUseCase(eventRepo, occasionRepo, idGen)
	expenditureUC := usecase.NewExpenditureUseCase(txManager, eventRepo, expenditureRepo, splitRepo, idGen, cache, appMetrics)
	settlementUC := usecase.NewSettlementUseCase(txManager, expenditureRepo, splitRepo, paymentRepo, idGen, retrier, cache, appMetrics)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, idGen, cache, appMetrics)
	balanceUC := usecase.NewBalanceUseCase(splitRepo, paymentRepo, cache, cfg.BalanceCacheTTL, log, appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		OccasionHandler:    handler.NewOccasionHandler(occasionUC),
		EventHandler:       handler.NewEventHandler(eventUC),
		ExpenditureHandler: handler.NewExpenditureHandler(expenditureUC),
		SettlementHandler:  handler.NewSettlementHandler(settlementUC),
		PaymentHandler:     handler.NewPaymentHandler(paymentUC),
		BalanceHandler:     handler.NewBalanceHandler(balanceUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:             log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return "migrations"
}
