package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/deisishop/storefront/api/routes"
	"github.com/deisishop/storefront/internal/catalog"
	"github.com/deisishop/storefront/internal/checkout"
	"github.com/deisishop/storefront/internal/storefront"
	"github.com/deisishop/storefront/pkg/config"
	"github.com/deisishop/storefront/pkg/logger"
	"github.com/deisishop/storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	collector := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	httpClient := &http.Client{Timeout: cfg.Shop.RequestTimeout}

	catalogClient, err := catalog.NewClient(
		cfg.Shop.BaseURL,
		catalog.WithHTTPClient(httpClient),
		catalog.WithRetry(cfg.Shop.FetchRetries, cfg.Shop.FetchBackoff),
		catalog.WithLogger(logg),
		catalog.WithMetrics(collector),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	submitter, err := checkout.NewSubmitter(
		cfg.Shop.BaseURL,
		checkout.WithHTTPClient(httpClient),
		checkout.WithLogger(logg),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout submitter", err)
		os.Exit(1)
	}

	session, err := storefront.NewSession(storefront.Params{
		Fetcher:   catalogClient,
		Submitter: submitter,
		Logger:    logg,
		Metrics:   collector,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront session", err)
		os.Exit(1)
	}

	session.Start(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
		"shop": cfg.Shop.BaseURL,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, session, catalogClient),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
