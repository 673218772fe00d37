package gemini

import (
	"context"
	"fmt"

	"github.com/aven-ai/support-agent/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client  *genai.Client
	modelID string
}

func NewClient(ctx context.Context, apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if modelID == "" {
		modelID = "gemini-pro"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}

	return &Client{
		client:  client,
		modelID: modelID,
	}, nil
}

func (c *Client) InvokeModel(ctx context.Context, request llm.Request) (*llm.Response, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(float32(request.Temperature))
	if request.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(request.MaxTokens))
	}

	result, err := model.GenerateContent(ctx, genai.Text(request.Prompt))
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gemini model: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	candidate := result.Candidates[0]
	var content string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
	}

	return &llm.Response{
		Content:    content,
		StopReason: candidate.FinishReason.String(),
	}, nil
}
