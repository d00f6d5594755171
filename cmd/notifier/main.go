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
	"github.com/chouhanrahul1999/betteruptime-app/internal/dispatch"
	"github.com/chouhanrahul1999/betteruptime-app/internal/health"
	"github.com/chouhanrahul1999/betteruptime-app/internal/logging"
	"github.com/chouhanrahul1999/betteruptime-app/internal/notify"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, "notifier")
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

	consumer := bus.NewConsumer(cfg.KafkaBrokers, bus.TopicWebsiteEvents, dispatch.GroupID, logger)
	defer consumer.Close()

	go health.Serve(ctx, cfg.HealthAddr, logger)

	adapters := notify.NewRegistry(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	d := dispatch.New(logger, store, store, adapters, cfg.SendTimeout)

	logger.Info("notifier_starting", zap.String("group", dispatch.GroupID))
	if err := consumer.Run(ctx, d.Handle); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("notifier_failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
