package mcpadapter

import (
	"context"

	"github.com/aven-ai/support-agent/internal/metrics"
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/orchestrator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the MCP tool input schema for the full query pipeline.
type AskInput struct {
	Question string `json:"question" jsonschema:"the user's question about Aven's products"`
}

// MetricsInput is the (empty) input schema for the metrics tool.
type MetricsInput struct{}

// MetricsOutput mirrors the HTTP /metrics payload.
type MetricsOutput struct {
	Metrics metrics.Snapshot `json:"metrics"`
	Summary string           `json:"summary"`
}

// NewAskHandler returns a tool handler that runs the full guarded RAG
// pipeline. Pass the returned function to mcp.AddTool.
func NewAskHandler(orch *orchestrator.Orchestrator) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, models.QueryResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, models.QueryResponse, error) {
		response, err := orch.Query(ctx, models.QueryRequest{Question: input.Question})
		if err != nil {
			return nil, models.QueryResponse{}, err
		}
		return nil, response, nil
	}
}

// NewMetricsHandler returns a tool handler exposing the guardrail counters.
func NewMetricsHandler(collector *metrics.Collector) func(context.Context, *mcp.CallToolRequest, MetricsInput) (*mcp.CallToolResult, MetricsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MetricsInput) (*mcp.CallToolResult, MetricsOutput, error) {
		return nil, MetricsOutput{
			Metrics: collector.Snapshot(),
			Summary: collector.Summary(),
		}, nil
	}
}
