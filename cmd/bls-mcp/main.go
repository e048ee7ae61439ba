// Command bls-mcp serves Bureau of Labor Statistics tools to MCP clients
// over stdio. Logs go to stderr; stdout belongs to the protocol.
package main

import (
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/RakeemRanger/bls-mcp/internal/adapter/bls"
	"github.com/RakeemRanger/bls-mcp/internal/adapter/mcpserver"
	"github.com/RakeemRanger/bls-mcp/internal/config"
	"github.com/RakeemRanger/bls-mcp/internal/observability"
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

	srv := mcpserver.New(kit, logger)
	if err := srv.Serve(); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
