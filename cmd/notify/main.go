package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"conectaleads/internal/config"
	"conectaleads/internal/database"
	"conectaleads/internal/events"
	"conectaleads/internal/logging"
	"conectaleads/internal/mq"
	"conectaleads/internal/repository/postgres"
)

const retryDelay = 2 * time.Second

func main() {
	cfg := config.Load()
	log := logging.Stdout(cfg.Location()).With(zap.String("service", cfg.AppName+"-notify"))
	defer func() { _ = log.Sync() }()

	if !cfg.Rabbit.Enabled() {
		log.Fatal("notify_misconfigured", zap.String("reason", "RABBIT_URL is required"))
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := events.NewNotificationHandler(postgres.NewNotificationPostgres(db), log)
	cons := mq.NewConsumer(cfg.Rabbit, events.Bindings, cfg.AppName+"-notify", h, log)

	for {
		if err := cons.Connect(); err != nil {
			log.Warn("mq_connect_failed", zap.Error(err), zap.Duration("retry_in", retryDelay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}
		break
	}
	defer cons.Close()

	log.Info("notify_started",
		zap.String("queue", cfg.Rabbit.Queue),
		zap.String("exchange", cfg.Rabbit.Exchange),
		zap.Strings("bindings", events.Bindings),
	)
	if err := cons.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("notify_run_failed", zap.Error(err))
	}
	log.Info("notify_stopped")
}
