package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/appdsizer/internal/config"
	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/logging"
	"github.com/JonMunkholm/appdsizer/internal/sizing"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
	"github.com/JonMunkholm/appdsizer/internal/web"
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

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"pageviews_per_user", cfg.Sizing.PageviewsPerUser,
		"te_minutes_per_month", cfg.ThousandEyes.MinutesPerMonth,
	)

	service, err := sizing.NewService(cfg.SizingOptions())
	if err != nil {
		slog.Error("failed to create sizing service", "error", err)
		os.Exit(1)
	}

	// Log registered tables
	slog.Info("tables registered",
		"count", core.TableCount(),
		"sheets", core.Sheets(),
		"test_types", len(thousandeyes.Catalog()),
	)
	for _, def := range core.All() {
		slog.Debug("table", "sheet", def.Info.Sheet, "key", def.Info.Key, "fields", len(def.FieldSpecs))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.Limiter().Status(); status.Active > 0 {
			slog.Info("waiting for workbook parses to complete", "active", status.Active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
