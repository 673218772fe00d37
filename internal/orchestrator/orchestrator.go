package orchestrator

import (
	"context"
	"fmt"

	"github.com/aven-ai/support-agent/internal/cache"
	"github.com/aven-ai/support-agent/internal/guardrails"
	"github.com/aven-ai/support-agent/internal/metrics"
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/retrieval"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Retriever produces grounding context and sources for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) (retrieval.Result, error)
}

// Generator produces a draft answer from context, question and sources.
type Generator interface {
	Generate(ctx context.Context, docContext string, question string, sources []models.SourceInfo) (string, error)
}

// Orchestrator runs the fixed per-request pipeline: input guardrail check,
// retrieval, generation, output guardrail check, respond. Requests are
// independent; the only shared mutable state is the metrics collector.
type Orchestrator struct {
	validator guardrails.Validator
	retriever Retriever
	generator Generator
	collector *metrics.Collector
	answers   cache.AnswerCache
	logger    *zerolog.Logger
}

func New(
	validator guardrails.Validator,
	retriever Retriever,
	generator Generator,
	collector *metrics.Collector,
	answers cache.AnswerCache,
	logger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		validator: validator,
		retriever: retriever,
		generator: generator,
		collector: collector,
		answers:   answers,
		logger:    logger,
	}
}

// Query processes one question end to end. A guardrail block is a normal
// response carrying the safe message, never an error; a failing adapter
// aborts the request with no partial response and no retry.
func (o *Orchestrator) Query(ctx context.Context, request models.QueryRequest) (models.QueryResponse, error) {
	logger := o.logger.With().Str("request_id", uuid.NewString()).Logger()
	logger.Info().Str("question", request.Question).Msg("processing query")

	// Every incoming request counts, whatever its outcome.
	o.collector.RecordQuery()

	if decision := o.validator.EvaluateInput(request.Question); decision.Blocked {
		name := decision.Violation.Category.MetricName()
		o.collector.RecordViolation(name)
		logger.Info().Str("category", name).Msg("query blocked by input guardrail")

		return models.QueryResponse{
			Answer:             decision.SafeMessage,
			Sources:            []models.SourceInfo{},
			Context:            "",
			GuardrailTriggered: name,
		}, nil
	}

	if o.answers != nil {
		if cached, ok := o.answers.Get(ctx, request.Question); ok {
			logger.Info().Msg("answer served from cache")
			return *cached, nil
		}
	}

	retrieved, err := o.retriever.Retrieve(ctx, request.Question)
	if err != nil {
		logger.Error().Err(err).Msg("retrieval failed")
		return models.QueryResponse{}, fmt.Errorf("retrieval failed: %w", err)
	}

	answer, err := o.generator.Generate(ctx, retrieved.Context, request.Question, retrieved.Sources)
	if err != nil {
		logger.Error().Err(err).Msg("generation failed")
		return models.QueryResponse{}, fmt.Errorf("generation failed: %w", err)
	}

	response := models.QueryResponse{
		Answer:  answer,
		Sources: retrieved.Sources,
		Context: retrieved.Context,
	}

	if decision := o.validator.EvaluateOutput(answer); decision.Blocked {
		name := "output_" + decision.Violation.Category.MetricName()
		o.collector.RecordViolation(name)
		logger.Info().Str("category", name).Msg("answer replaced by output guardrail")

		response.Answer = decision.SafeMessage
		response.GuardrailTriggered = name
	} else if o.answers != nil {
		o.answers.Set(ctx, request.Question, response)
	}

	logger.Info().Int("sources", len(response.Sources)).Msg("query processed")
	return response, nil
}
