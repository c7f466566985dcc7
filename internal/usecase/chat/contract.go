package chat

import (
	"context"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/filter"
)

// Retriever defines the storage contract for snippet retrieval.
type Retriever interface {
	Search(
		ctx context.Context, vector []float32, filters filter.Filter, limit int,
	) ([]domain.Snippet, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator produces a free-text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
