// The worker consumes slot-available notices from Kafka and delivers them to
// waitlisted users. It runs separately from the API server so notification
// delivery never sits on a request path.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"courtbook/internal/handler/middleware"
	"courtbook/internal/infra/notify"
	"courtbook/internal/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()
	slog.SetDefault(logger)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("no kafka brokers configured, worker has nothing to consume")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := notify.NewConsumer(cfg.Kafka, notify.NewSlogEmailSender())

	logger.Info("worker started",
		"brokers", cfg.Kafka.Brokers,
		"topic", cfg.Kafka.NotificationsTopic,
		"group", cfg.Kafka.GroupID)

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("worker stopped")
}
