// Package main is the entrypoint for the FieldScout API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"fieldscout/internal/api"
	"fieldscout/internal/api/handler"
	mw "fieldscout/internal/api/middleware"
	"fieldscout/internal/artifact"
	"fieldscout/internal/cache"
	"fieldscout/internal/config"
	"fieldscout/internal/history"
	"fieldscout/internal/observability"
	"fieldscout/internal/weather"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	// History backend: Postgres when configured, a local JSON file otherwise.
	var store history.Store
	if cfg.Database.URL != "" {
		pool, err := history.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		if err := history.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")

		store = history.NewPostgresStore(pool, clock, nil)
	} else {
		store = history.NewFileStore(cfg.History.File, clock, nil)
		slog.Info("using file-backed history", "path", cfg.History.File)
	}

	// Cache: Redis when configured, otherwise a no-op stand-in that also
	// disables rate limiting.
	var cacheBackend cache.Cache = cache.Noop{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		cacheBackend = redisCache
	}

	metrics := observability.NewMetrics()

	artifacts, err := artifact.NewStore(cfg.Static.Dir, clock)
	if err != nil {
		return fmt.Errorf("create artifact store: %w", err)
	}

	weatherClient := weather.NewOpenMeteoClient(cfg.Weather.BaseURL, cfg.Weather.Timeout)
	weatherSvc := weather.NewService(weatherClient, weather.NewSimulator(clock, nil), cacheBackend, metrics)

	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(cacheBackend, cfg.Rate.RequestsPerMinute),

		RootHandler:      handler.NewRootHandler(),
		HealthHandler:    handler.NewHealthHandler(store, cacheBackend),
		AnalyzeHandler:   handler.NewAnalyzeHandler(store, artifacts, metrics, clock),
		WeatherHandler:   handler.NewWeatherHandler(weatherSvc, store, metrics),
		DashboardHandler: handler.NewDashboardHandler(store, metrics),

		StaticDir: artifacts.Dir(),
	}

	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
