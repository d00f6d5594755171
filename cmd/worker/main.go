package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/bus"
	"github.com/chouhanrahul1999/betteruptime-app/internal/config"
	"github.com/chouhanrahul1999/betteruptime-app/internal/health"
	"github.com/chouhanrahul1999/betteruptime-app/internal/logging"
	"github.com/chouhanrahul1999/betteruptime-app/internal/probe"
	"github.com/chouhanrahul1999/betteruptime-app/internal/queue"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo/postgres"
	"github.com/chouhanrahul1999/betteruptime-app/internal/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, "worker-"+cfg.Region)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("store_connect", zap.Error(err))
	}
	defer store.Close()

	q, err := queue.New(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Fatal("queue_connect", zap.Error(err))
	}
	defer q.Close()

	producer := bus.NewProducer(cfg.KafkaBrokers, bus.TopicWebsiteEvents, logger)
	defer producer.Close()

	go health.Serve(ctx, cfg.HealthAddr, logger)

	w := worker.New(
		logger,
		cfg.Region,
		cfg.WorkerID,
		q,
		probe.NewHTTPChecker(cfg.ProbeTimeout),
		store,
		store,
		producer,
		cfg.BatchSize,
		cfg.BlockTimeout,
	)

	// A batch failure exits non-zero on purpose: the supervisor restarts the
	// process and the queue redelivers the unacked entries.
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker_failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
