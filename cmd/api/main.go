package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hazolabs/storefront-backend/api/routes"
	"github.com/hazolabs/storefront-backend/internal/admins"
	"github.com/hazolabs/storefront-backend/internal/backup"
	"github.com/hazolabs/storefront-backend/internal/cart"
	"github.com/hazolabs/storefront-backend/internal/catalog"
	"github.com/hazolabs/storefront-backend/internal/content"
	"github.com/hazolabs/storefront-backend/internal/coupons"
	"github.com/hazolabs/storefront-backend/internal/media"
	"github.com/hazolabs/storefront-backend/internal/notify"
	"github.com/hazolabs/storefront-backend/internal/orders"
	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/metrics"
	"github.com/hazolabs/storefront-backend/pkg/migrate"
	"github.com/hazolabs/storefront-backend/pkg/outbox"
	"github.com/hazolabs/storefront-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "redis not configured, login throttling disabled")
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	notifierMetrics := metrics.NewNotifierMetrics(registry)

	conn := dbClient.DB()
	productsRepo := catalog.NewProductRepository(conn)
	categoriesRepo := catalog.NewCategoryRepository(conn)
	outboxRepo := outbox.NewRepository(conn)
	events := outbox.NewService(outboxRepo, logg)

	productSvc, err := catalog.NewProductService(dbClient, productsRepo, categoriesRepo, logg)
	exitOn(logg, "product service", err)
	categorySvc, err := catalog.NewCategoryService(categoriesRepo, productsRepo, logg)
	exitOn(logg, "category service", err)
	cartSvc, err := cart.NewService(conn, logg)
	exitOn(logg, "cart service", err)
	couponSvc, err := coupons.NewService(conn, logg)
	exitOn(logg, "coupon service", err)
	orderSvc, err := orders.NewService(dbClient, orders.NewRepository(conn), events, logg)
	exitOn(logg, "order service", err)
	announcementSvc, err := content.NewAnnouncementService(conn, logg)
	exitOn(logg, "announcement service", err)
	homepageSvc, err := content.NewHomepageService(conn, logg)
	exitOn(logg, "homepage service", err)
	footerSvc, err := content.NewFooterService(conn, logg)
	exitOn(logg, "footer service", err)
	pageSvc, err := content.NewPageService(conn, logg)
	exitOn(logg, "page service", err)
	settingsSvc, err := content.NewSettingsService(conn, logg)
	exitOn(logg, "settings service", err)
	adminSvc, err := admins.NewService(conn, cfg.JWT, cfg.Password, logg)
	exitOn(logg, "admin service", err)
	mediaSvc, err := media.NewService(cfg.Media, logg)
	exitOn(logg, "media service", err)
	backupSvc, err := backup.NewService(dbClient, cfg.Backup, logg)
	exitOn(logg, "backup service", err)

	if err := adminSvc.EnsureBootstrap(ctx, cfg.Bootstrap); err != nil {
		logg.Error(ctx, "failed to bootstrap admin account", err)
		os.Exit(1)
	}

	sink, err := notify.NewTelegramSink(cfg.Telegram, settingsSvc, logg, notifierMetrics)
	exitOn(logg, "telegram sink", err)
	dispatcher, err := notify.NewDispatcher(outboxRepo, sink, cfg.Outbox, logg)
	exitOn(logg, "notification dispatcher", err)

	go dispatcher.Run(ctx)
	go backupSvc.Run(ctx)

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, registry, httpMetrics, routes.Services{
		Products:      productSvc,
		Categories:    categorySvc,
		Cart:          cartSvc,
		Coupons:       couponSvc,
		Orders:        orderSvc,
		Announcements: announcementSvc,
		Homepage:      homepageSvc,
		Footer:        footerSvc,
		Pages:         pageSvc,
		Settings:      settingsSvc,
		Admins:        adminSvc,
		Media:         mediaSvc,
		Backups:       backupSvc,
		Events:        events,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	logCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(logCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "api server stopped")
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+what, err)
		os.Exit(1)
	}
}
