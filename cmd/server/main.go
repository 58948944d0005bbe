package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gocalc/internal/adapter/http"
	"github.com/iho/gocalc/internal/adapter/http/handler"
	"github.com/iho/gocalc/internal/adapter/http/middleware"
	memoryRepo "github.com/iho/gocalc/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gocalc/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gocalc/internal/adapter/repository/redis"
	"github.com/iho/gocalc/internal/infrastructure/config"
	"github.com/iho/gocalc/internal/infrastructure/logger"
	"github.com/iho/gocalc/internal/infrastructure/metrics"
	"github.com/iho/gocalc/internal/infrastructure/postgres"
	"github.com/iho/gocalc/internal/infrastructure/redis"
	"github.com/iho/gocalc/internal/usecase"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterIdleTimeout     = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	app, err := buildApp(ctx, cfg, appLogger, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      app.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Str("port", cfg.HTTPPort).
			Str("history_backend", cfg.HistoryBackend).
			Str("preferences_backend", cfg.PreferencesBackend).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info().Msg("server stopped")
	return nil
}

// app is the assembled server with the connections it owns.
type app struct {
	router  http.Handler
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp connects the configured backends and wires use cases, handlers
// and the router. A nil registry selects the default Prometheus registry.
func buildApp(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger, reg *prometheus.Registry) (*app, error) {
	a := &app{}

	m := metrics.New()
	var metricsHandler http.Handler
	if reg != nil {
		m = metrics.NewWithRegisterer(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	var redisClient *goredis.Client
	if cfg.NeedsRedis() {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		a.closers = append(a.closers, func() { _ = client.Close() })
		appLogger.Info().Msg("connected to redis")
	}

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		if cfg.RunMigrations {
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
				a.Close()
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		p, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		pool = p
		a.closers = append(a.closers, p.Close)
		appLogger.Info().Msg("connected to postgres")
	}

	var historyRepo usecase.HistoryRepository
	switch cfg.HistoryBackend {
	case config.BackendRedis:
		historyRepo = redisRepo.NewHistoryRepository(redisClient)
	case config.BackendPostgres:
		historyRepo = postgresRepo.NewHistoryRepository(pool, newHistoryRetrier(cfg))
	default:
		historyRepo = memoryRepo.NewHistoryRepository()
	}

	var preferencesRepo usecase.PreferencesRepository
	switch cfg.PreferencesBackend {
	case config.BackendRedis:
		preferencesRepo = redisRepo.NewPreferencesRepository(redisClient)
	default:
		preferencesRepo = memoryRepo.NewPreferencesRepository()
	}

	var cache usecase.Cache
	if cfg.CacheEnabled {
		cache = redisRepo.NewCache(redisClient)
	}

	historyUC := usecase.NewHistoryUseCase(historyRepo, postgresRepo.NewULIDGenerator(), m)
	loanUC := usecase.NewLoanUseCase(cache, historyUC, m)
	loanUC.SetCacheTTL(cfg.ScheduleCacheTTL)
	calculatorUC := usecase.NewCalculatorUseCase(loanUC, historyUC, m)
	preferencesUC := usecase.NewPreferencesUseCase(preferencesRepo)

	routerCfg := httpAdapter.RouterConfig{
		LoanHandler:        handler.NewLoanHandler(loanUC),
		CalculatorHandler:  handler.NewCalculatorHandler(calculatorUC),
		HistoryHandler:     handler.NewHistoryHandler(historyUC),
		PreferencesHandler: handler.NewPreferencesHandler(preferencesUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             appLogger,
		MetricsHandler:     metricsHandler,
	}

	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.OnLimited = m.ObserveRateLimited
		routerCfg.RateLimiter = limiter

		cleanupCtx, cancel := context.WithCancel(ctx)
		a.closers = append(a.closers, cancel)
		go limiter.RunCleanup(cleanupCtx, limiterCleanupInterval, limiterIdleTimeout)
	}

	a.router = httpAdapter.NewRouter(routerCfg)

	return a, nil
}

func newHistoryRetrier(cfg *config.Config) *postgresRepo.Retrier {
	retry := postgresRepo.DefaultRetryConfig
	retry.MaxRetries = cfg.DatabaseMaxRetries
	if cfg.DatabaseRetryBackoff > 0 {
		retry.InitialInterval = cfg.DatabaseRetryBackoff
	}
	return postgresRepo.NewRetrierWithConfig(retry)
}
