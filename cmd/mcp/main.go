package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aven-ai/support-agent/internal/mcpadapter"
	"github.com/aven-ai/support-agent/internal/setup"
	"github.com/aven-ai/support-agent/internal/setup/logger"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg := setup.LoadConfig()
	lg := logger.New(cfg.LogLevel)

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &lg)
	if err != nil {
		lg.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	// Create MCP Server
	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			lg.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		lg.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "aven-support-agent",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_aven",
		Description: "Ask a question about Aven's products. Runs the guarded retrieval-augmented pipeline and returns the answer with its sources.",
	}, mcpadapter.NewAskHandler(deps.Orchestrator))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "guardrail_metrics",
		Description: "Current guardrail counters: total queries, blocked queries, and per-category violation counts.",
	}, mcpadapter.NewMetricsHandler(deps.Collector))

	return server
}
