package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aven-ai/support-agent/internal/models"
	"github.com/rs/zerolog/log"
)

type Query struct {
	Vector          []float32 `json:"vector"`
	TopK            uint32    `json:"topK"`
	Namespace       string    `json:"namespace,omitempty"`
	IncludeMetadata bool      `json:"includeMetadata"`
	IncludeValues   bool      `json:"includeValues"`
}

type Match struct {
	ID       string                 `json:"id"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

type QueryResponse struct {
	Matches   []Match `json:"matches"`
	Namespace string  `json:"namespace,omitempty"`
}

// Client talks to the Pinecone query API for one index.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("PINECONE_API_KEY environment variable not set")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("PINECONE_BASE_URL environment variable not set")
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}, nil
}

func (c *Client) QueryIndex(ctx context.Context, vector []float32, namespace string, topK uint32) (*QueryResponse, error) {
	query := Query{
		Vector:          vector,
		TopK:            topK,
		Namespace:       namespace,
		IncludeMetadata: true,
		IncludeValues:   false,
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Pinecone query: %w", err)
	}

	log.Debug().Str("namespace", namespace).Uint32("top_k", topK).Msg("Querying Pinecone index")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Pinecone: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(resp.Body)
		log.Error().Int("status", resp.StatusCode).Str("body", string(errorText)).Msg("Pinecone API error")
		return nil, fmt.Errorf("Pinecone API error: %d - %s", resp.StatusCode, string(errorText))
	}

	var queryResponse QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Pinecone response: %w", err)
	}

	log.Debug().Int("matches", len(queryResponse.Matches)).Msg("Retrieved matches from Pinecone")

	return &queryResponse, nil
}

type sourceKey struct {
	sourceReference string
	filename        string
	title           string
}

// ExtractContextAndSources joins the matched passages into one context
// string and collects their source descriptors, deduplicated by the
// (source_reference, filename, title) triple. The filename participates in
// deduplication only; it is not surfaced in the response.
func ExtractContextAndSources(matches []Match) (string, []models.SourceInfo) {
	contextParts := make([]string, 0, len(matches))
	sources := make([]models.SourceInfo, 0, len(matches))
	seen := make(map[sourceKey]struct{})

	for _, match := range matches {
		if match.Metadata == nil {
			continue
		}

		if content, ok := match.Metadata["page_content"].(string); ok {
			contextParts = append(contextParts, content)
		}

		key := sourceKey{
			sourceReference: metadataString(match.Metadata, "source_reference", "unknown"),
			filename:        metadataString(match.Metadata, "filename", "unknown"),
			title:           metadataString(match.Metadata, "title", "Untitled"),
		}

		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		sources = append(sources, models.SourceInfo{
			SourceReference: key.sourceReference,
			Title:           key.title,
		})
	}

	return strings.Join(contextParts, " "), sources
}

func metadataString(metadata map[string]interface{}, key string, fallback string) string {
	if value, ok := metadata[key].(string); ok {
		return value
	}
	return fallback
}
