package retrieval

import (
	"context"
	"fmt"

	"github.com/aven-ai/support-agent/internal/embedding"
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/pinecone"
	"github.com/rs/zerolog/log"
)

// Result is what retrieval hands to generation: the joined passages and the
// deduplicated sources they came from.
type Result struct {
	Context string
	Sources []models.SourceInfo
}

// VectorRetriever answers the orchestrator's retrieval contract by embedding
// the question and running a similarity search against the Pinecone index.
type VectorRetriever struct {
	embedder  embedding.Embedder
	index     *pinecone.Client
	namespace string
	topK      uint32
}

func NewVectorRetriever(embedder embedding.Embedder, index *pinecone.Client, namespace string, topK uint32) *VectorRetriever {
	return &VectorRetriever{
		embedder:  embedder,
		index:     index,
		namespace: namespace,
		topK:      topK,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, question string) (Result, error) {
	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed question: %w", err)
	}

	response, err := r.index.QueryIndex(ctx, vector, r.namespace, r.topK)
	if err != nil {
		return Result{}, fmt.Errorf("failed to query index: %w", err)
	}

	if len(response.Matches) == 0 {
		return Result{}, fmt.Errorf("no relevant documents found")
	}

	context, sources := pinecone.ExtractContextAndSources(response.Matches)

	log.Debug().Int("matches", len(response.Matches)).Int("sources", len(sources)).Msg("Context extracted")

	return Result{Context: context, Sources: sources}, nil
}
