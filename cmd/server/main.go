package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/app"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/config"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/logger"
)

func main() {
	// Load and validate configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "inventory-console",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	slog.SetDefault(log)
	log.Info("starting inventory console",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.Bool("redis_enabled", cfg.RedisEnabled),
		slog.Bool("kafka_enabled", cfg.KafkaEnabled),
	)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create a context that is cancelled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("inventory console stopped")
}
