// Package main is the entry point for the stocktake background worker.
// It relays outbox events to Redis pub/sub and purges delivered rows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocktake/internal/config"
	appctx "stocktake/internal/core/context"
	"stocktake/internal/infrastructure/cache"
	"stocktake/internal/infrastructure/storage/postgres"
	"stocktake/pkg/logger"
)

// publishedRetention is how long delivered outbox rows are kept.
const publishedRetention = 7 * 24 * time.Hour

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URL is required for the worker")
	}

	pool, err := postgres.NewPool(ctx,
		postgres.NewPoolConfig(cfg.DatabaseURL, "worker", cfg.DBMaxConns, cfg.DBMinConns))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	defer func() { _ = rdb.Close() }()

	relay := postgres.NewOutboxRelay(
		postgres.NewTxManager(pool),
		cfg.OutboxBatchSize,
		cache.NewEventRelay(rdb, cfg.OutboxChannel),
	)

	w := &Worker{
		pool:         pool,
		relay:        relay,
		log:          log.WithComponent("worker"),
		pollInterval: cfg.OutboxPollInterval,
	}

	log.Infow("starting stocktake worker",
		"channel", cfg.OutboxChannel,
		"poll_interval", cfg.OutboxPollInterval,
		"batch_size", cfg.OutboxBatchSize,
	)
	w.Run(ctx)
	log.Info("worker stopped")
}

// Worker drives the outbox relay on a timer.
type Worker struct {
	pool         *postgres.Pool
	relay        *postgres.OutboxRelay
	log          *logger.Logger
	pollInterval time.Duration
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(time.Hour)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		case <-cleanupTicker.C:
			w.purge(ctx)
			postgres.LogPoolStats(ctx, w.pool.Unwrap())
		}
	}
}

// jobContext gives one worker pass its own trace ids and the component
// logger, so relay and repository log lines of the pass can be correlated.
func (w *Worker) jobContext(ctx context.Context) context.Context {
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext())
	return logger.WithLogger(ctx, w.log)
}

// drain delivers batches until the outbox has nothing ready.
func (w *Worker) drain(ctx context.Context) {
	ctx = w.jobContext(ctx)
	for ctx.Err() == nil {
		n, err := w.relay.ProcessBatch(ctx)
		if err != nil {
			logger.Error(ctx, "outbox batch failed", "error", err)
			return
		}
		if n == 0 {
			return
		}
		logger.Debug(ctx, "relayed outbox batch", "count", n)
	}
}

func (w *Worker) purge(ctx context.Context) {
	ctx = w.jobContext(ctx)
	n, err := w.relay.PurgePublished(ctx, publishedRetention)
	if err != nil {
		logger.Warn(ctx, "outbox purge failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info(ctx, "purged delivered outbox messages", "count", n)
	}
}
