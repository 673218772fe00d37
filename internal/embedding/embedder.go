package embedding

import (
	"context"
)

// Embedder turns a piece of text into a dense vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
