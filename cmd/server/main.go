package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ryanpedersen42/risk-report-generator/internal/config"
	"github.com/ryanpedersen42/risk-report-generator/internal/core"
	"github.com/ryanpedersen42/risk-report-generator/internal/drata"
	"github.com/ryanpedersen42/risk-report-generator/internal/logging"
	"github.com/ryanpedersen42/risk-report-generator/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upstream_base", cfg.Upstream.BaseURL,
		"register_configured", cfg.Upstream.RiskRegisterID != "",
		"max_pages", cfg.Fetch.MaxPages,
		"max_records", cfg.Fetch.MaxRecords,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	if cfg.Upstream.RiskRegisterID == "" {
		slog.Warn("RISK_REGISTER_ID is not set; /api/risks will fail until it is configured")
	}

	// Wire the upstream client into the aggregator; all fetch state is
	// per-request, so this is the only long-lived plumbing.
	client := drata.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.RequestTimeout)
	aggregator := core.NewAggregator(client)

	server := web.NewServer(aggregator, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
