package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultModelURL = "https://router.huggingface.co/hf-inference/models/sentence-transformers/all-MiniLM-L6-v2/pipeline/feature-extraction"

type embeddingRequest struct {
	Inputs []string `json:"inputs"`
}

// Client calls a Hugging Face feature-extraction endpoint.
type Client struct {
	httpClient *http.Client
	modelURL   string
	apiToken   string
}

func NewClient(apiToken string, modelURL string) (*Client, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("HUGGINGFACE_API_TOKEN environment variable not set")
	}
	if modelURL == "" {
		modelURL = defaultModelURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		modelURL:   modelURL,
		apiToken:   apiToken,
	}, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Inputs: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	log.Debug().Int("text_length", len(text)).Msg("Generating embedding")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API error: %d - %s", resp.StatusCode, string(errorText))
	}

	var vectors [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("failed to parse embedding response: %w", err)
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedding API returned an empty vector")
	}

	return vectors[0], nil
}
