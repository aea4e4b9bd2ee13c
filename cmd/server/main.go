// Package main is the entry point for the stocktake API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"stocktake/internal/config"
	"stocktake/internal/domain/auth"
	"stocktake/internal/infrastructure/cache"
	v1 "stocktake/internal/infrastructure/http/v1"
	"stocktake/internal/infrastructure/http/v1/handlers"
	"stocktake/internal/infrastructure/http/v1/middleware"
	"stocktake/internal/infrastructure/observability"
	"stocktake/internal/infrastructure/storage/postgres"
	"stocktake/migrations"
	"stocktake/pkg/logger"
)

const serviceName = "stocktake-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatalw("server exited with error", "error", err)
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("starting stocktake server", "env", cfg.AppEnv, "version", handlers.Version)

	shutdownTracing, err := observability.Init(ctx, log, observability.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  serviceName,
		Environment:  cfg.AppEnv,
		Version:      handlers.Version,
		Endpoint:     cfg.OTelEndpoint,
		Insecure:     cfg.OTelInsecure,
		SamplerRatio: cfg.OTelSamplerRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warnw("tracer shutdown failed", "error", err)
		}
	}()

	if cfg.MigrateOnStart {
		if err := migrateUp(cfg.DatabaseURL, log); err != nil {
			return err
		}
	}

	// --- Database ---
	pool, err := postgres.NewPool(ctx,
		postgres.NewPoolConfig(cfg.DatabaseURL, "server", cfg.DBMaxConns, cfg.DBMinConns))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(pool.Ping),
	}

	// --- Redis (optional) ---
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = cache.Pinger{Client: rdb}
		log.Info("redis connection established")
	}

	routerCfg := v1.RouterConfig{
		Logger:      log,
		Services:    v1.NewPostgresServices(txm, postgres.NewOutboxPublisher(txm)),
		Health:      handlers.NewHealthHandler(pool, checks),
		CORSOrigins: cfg.FrontendOrigins,
		Debug:       cfg.IsDevelopment(),
	}
	if cfg.OTelEnabled {
		routerCfg.ServiceName = serviceName
	}
	if cfg.RateLimit != "" {
		routerCfg.RateLimiter, err = cache.NewLimiter(cfg.RateLimit, rdb)
		if err != nil {
			return err
		}
	}
	if cfg.AuthEnabled() {
		routerCfg.JWTValidator = newJWTValidator(cfg)
	} else {
		log.Warn("JWT_SECRET not set, API is served without authentication")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gzhttp.GzipHandler(v1.NewRouter(routerCfg)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newJWTValidator(cfg *config.Config) middleware.JWTValidator {
	jwtCfg := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtCfg.Issuer = cfg.JWTIssuer
	jwtCfg.AccessTokenTTL = cfg.JWTTTL
	return auth.NewJWTService(jwtCfg)
}

func migrateUp(dsn string, log *logger.Logger) error {
	m, err := postgres.NewMigrator(migrations.FS, dsn, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	if err := m.Up(); err != nil {
		return err
	}
	version, _, err := m.Version()
	if err != nil {
		return err
	}
	log.Infow("database schema up to date", "version", version)
	return nil
}
