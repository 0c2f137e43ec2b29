package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnuindustry/warehouse-backend/api/routes"
	"github.com/bnuindustry/warehouse-backend/internal/finance"
	"github.com/bnuindustry/warehouse-backend/internal/fulfillment"
	"github.com/bnuindustry/warehouse-backend/internal/inventory"
	"github.com/bnuindustry/warehouse-backend/internal/purchasing"
	"github.com/bnuindustry/warehouse-backend/internal/seed"
	"github.com/bnuindustry/warehouse-backend/internal/suppliers"
	"github.com/bnuindustry/warehouse-backend/pkg/config"
	"github.com/bnuindustry/warehouse-backend/pkg/ids"
	"github.com/bnuindustry/warehouse-backend/pkg/logger"
	"github.com/bnuindustry/warehouse-backend/pkg/metrics"
)

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

	generator := ids.UUIDGenerator{}

	inventorySvc, err := inventory.NewService(cfg.Inventory)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	supplierSvc, err := suppliers.NewService(generator)
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	financeSvc, err := finance.NewService(generator)
	if err != nil {
		logg.Error(context.Background(), "failed to create finance service", err)
		os.Exit(1)
	}

	purchasingSvc, err := purchasing.NewService(inventorySvc, financeSvc, supplierSvc, generator)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchasing service", err)
		os.Exit(1)
	}

	fulfillmentSvc, err := fulfillment.NewService(inventorySvc, financeSvc, generator)
	if err != nil {
		logg.Error(context.Background(), "failed to create fulfillment service", err)
		os.Exit(1)
	}

	if cfg.Seed.DemoData {
		if err := seed.Demo(context.Background(), logg, inventorySvc, supplierSvc); err != nil {
			logg.Warn(context.Background(), "demo seed finished with errors")
		}
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Addr:              addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			httpMetrics,
			inventorySvc,
			supplierSvc,
			purchasingSvc,
			fulfillmentSvc,
			financeSvc,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
