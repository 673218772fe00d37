package generation

import (
	"context"
	"fmt"

	"github.com/aven-ai/support-agent/internal/llm"
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/prompts"
)

// Generator composes prompt formatting and LLM invocation into the
// generation boundary the orchestrator calls: context + question + sources
// in, draft answer out.
type Generator struct {
	prompts     *prompts.Manager
	llmClient   llm.Client
	maxTokens   int
	temperature float64
}

func NewGenerator(promptManager *prompts.Manager, llmClient llm.Client, maxTokens int, temperature float64) *Generator {
	if maxTokens == 0 {
		maxTokens = 2000
	}

	return &Generator{
		prompts:     promptManager,
		llmClient:   llmClient,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (g *Generator) Generate(ctx context.Context, docContext string, question string, sources []models.SourceInfo) (string, error) {
	prompt := g.prompts.Format(docContext, question, sources)

	response, err := g.llmClient.InvokeModel(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	if response.Content == "" {
		return "", fmt.Errorf("model returned an empty answer")
	}

	return response.Content, nil
}
