package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hazolabs/storefront-backend/internal/content"
	"github.com/hazolabs/storefront-backend/internal/notify"
	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/metrics"
	"github.com/hazolabs/storefront-backend/pkg/migrate"
	"github.com/hazolabs/storefront-backend/pkg/outbox"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "notifier"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "notifier",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	notifierMetrics := metrics.NewNotifierMetrics(registry)

	settingsSvc, err := content.NewSettingsService(dbClient.DB(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}
	sink, err := notify.NewTelegramSink(cfg.Telegram, settingsSvc, logg, notifierMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create telegram sink", err)
		os.Exit(1)
	}

	repo := outbox.NewRepository(dbClient.DB())
	dispatcher, err := notify.NewDispatcher(repo, sink, cfg.Outbox, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification dispatcher", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting notifier")

	dispatcher.Run(ctx)

	logg.Info(ctx, "notifier shutting down gracefully")
}
