package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/config"
	"github.com/chouhanrahul1999/betteruptime-app/internal/health"
	"github.com/chouhanrahul1999/betteruptime-app/internal/logging"
	"github.com/chouhanrahul1999/betteruptime-app/internal/queue"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo/postgres"
	"github.com/chouhanrahul1999/betteruptime-app/internal/scheduler"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, "pusher")
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

	go health.Serve(ctx, cfg.HealthAddr, logger)

	logger.Info("pusher_starting",
		zap.Strings("regions", cfg.Regions),
		zap.Duration("interval", cfg.Interval),
	)
	scheduler.NewPusher(logger, store, q, cfg.Regions, cfg.Interval).Run(ctx)
}
