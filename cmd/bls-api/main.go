// Command bls-api serves Bureau of Labor Statistics data over HTTP and keeps
// the series cache warm with a background refresher.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/RakeemRanger/bls-mcp/internal/adapter/bls"
	"github.com/RakeemRanger/bls-mcp/internal/adapter/httpapi"
	"github.com/RakeemRanger/bls-mcp/internal/config"
	"github.com/RakeemRanger/bls-mcp/internal/observability"
	"github.com/RakeemRanger/bls-mcp/internal/refresh"
	"github.com/RakeemRanger/bls-mcp/internal/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := bls.NewClient(cfg, logger, metrics)
	kit := tools.New(client, logger, metrics)
	refresher := refresh.New(client, cfg.CacheTTL, logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, kit, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start cache refresher.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
