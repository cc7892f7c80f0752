package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/api/routes"
	"github.com/rivayastudio/rivaya-backend/internal/adminauth"
	"github.com/rivayastudio/rivaya-backend/internal/bootstrap"
	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	"github.com/rivayastudio/rivaya-backend/internal/coupons"
	"github.com/rivayastudio/rivaya-backend/internal/orders"
	"github.com/rivayastudio/rivaya-backend/internal/settings"
	"github.com/rivayastudio/rivaya-backend/internal/stats"
	"github.com/rivayastudio/rivaya-backend/pkg/config"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
	"github.com/rivayastudio/rivaya-backend/pkg/metrics"
	"github.com/rivayastudio/rivaya-backend/pkg/notify"
)

func main() {
	// Money fields serialize as JSON numbers, matching what the
	// storefront and admin panel send.
	decimal.MarshalJSONWithoutQuotes = true

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

	var store kv.Store
	var pinger kv.Pinger
	if cfg.Store.UseMemory() {
		memStore := kv.NewMemory()
		store, pinger = memStore, memStore
		logg.Warn(context.Background(), "using in-memory store, data is lost on restart")
	} else {
		redisStore, err := kv.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store, pinger = redisStore, redisStore
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	orderMetrics := metrics.NewOrderMetrics(registry)

	notifier := notify.NewClient(
		notify.WithBaseURL(cfg.Notify.BaseURL),
		notify.WithTimeout(cfg.Notify.Timeout),
	)

	catalogRepo := catalog.NewRepository(store)
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	couponService, err := coupons.NewService(coupons.NewRepository(store))
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}
	settingsService, err := settings.NewService(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}
	orderRepo := orders.NewRepository(store)
	orderService, err := orders.NewService(orderRepo, settingsService, notifier, orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	authService, err := adminauth.NewService(store, adminauth.DefaultMatcher)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	statsService, err := stats.NewService(catalogRepo, orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	seeder, err := bootstrap.NewSeeder(catalogService, settingsService, authService, cfg.Admin)
	if err != nil {
		logg.Error(context.Background(), "failed to create seeder", err)
		os.Exit(1)
	}
	if err := seeder.Seed(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed store", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			pinger,
			registry,
			catalogService,
			couponService,
			orderService,
			authService,
			settingsService,
			statsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
