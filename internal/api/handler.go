package api

import (
	"net/http"

	"github.com/aven-ai/support-agent/internal/api/middleware"
	"github.com/aven-ai/support-agent/internal/metrics"
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/orchestrator"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Service string `json:"service" description:"Service name"`
}

type MetricsResponse struct {
	Metrics metrics.Snapshot `json:"metrics"`
	Summary string           `json:"summary"`
}

type Handler struct {
	orchestrator *orchestrator.Orchestrator
	collector    *metrics.Collector
	streaming    StreamConfig
	logger       *zerolog.Logger
}

func NewHandler(orch *orchestrator.Orchestrator, collector *metrics.Collector, streaming StreamConfig, logger *zerolog.Logger) *Handler {
	return &Handler{
		orchestrator: orch,
		collector:    collector,
		streaming:    streaming,
		logger:       logger,
	}
}

// POST /query
// Body: QueryRequest
// Returns: QueryResponse, or 500 {error, message} on pipeline failure.
func (h *Handler) Query(req *restful.Request, resp *restful.Response) {
	var queryRequest models.QueryRequest
	if err := req.ReadEntity(&queryRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.WriteError(resp, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctx := req.Request.Context()
	response, err := h.orchestrator.Query(ctx, queryRequest)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to process query")
		middleware.WriteError(resp, http.StatusInternalServerError, "Failed to process query", err.Error())
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, response)
}

// GET /health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "aven-support-api",
	})
}

// GET /metrics
func (h *Handler) Metrics(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, MetricsResponse{
		Metrics: h.collector.Snapshot(),
		Summary: h.collector.Summary(),
	})
}
