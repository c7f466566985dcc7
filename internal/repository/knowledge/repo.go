// Package knowledge retrieves knowledge-base snippets by vector similarity.
package knowledge

import (
	"context"
	"fmt"

	"github.com/jobportal-labs/ragchat/internal/db"
	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/filter"
)

const (
	// candidateMultiplier scales the ANN candidate pool relative to the
	// requested result count.
	candidateMultiplier = 10

	// minCandidates floors the candidate pool so small topK values still
	// get decent recall.
	minCandidates = 150
)

// store is the consumer interface for snippet retrieval (ISP).
type store interface {
	SearchVector(ctx context.Context, q *db.VectorQuery) (*db.SearchResult, error)
}

// Config locates the searchable collection and its vector index.
type Config struct {
	Collection string
	Index      string
	Path       string
}

// Repo implements usecase/chat.Retriever.
type Repo struct {
	store store
	cfg   Config
}

// New creates a knowledge repository over the given store.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// Search runs a filtered vector search and returns snippets in engine order.
// The candidate pool is max(10*limit, 150).
func (r *Repo) Search(
	ctx context.Context, vector []float32, filters filter.Filter, limit int,
) ([]domain.Snippet, error) {
	q := &db.VectorQuery{
		Collection:    r.cfg.Collection,
		Index:         r.cfg.Index,
		Path:          r.cfg.Path,
		Vector:        vector,
		NumCandidates: numCandidates(limit),
		Limit:         limit,
		Filters:       filters,
	}

	sr, err := r.store.SearchVector(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: collection %s: %w", domain.ErrSearchFailed, r.cfg.Collection, err)
	}

	return parseResults(sr), nil
}

// numCandidates computes the ANN candidate pool for a result limit.
func numCandidates(limit int) int {
	n := candidateMultiplier * limit
	if n < minCandidates {
		n = minCandidates
	}
	return n
}

// parseResults converts db.SearchResult into []domain.Snippet, preserving
// the engine's score ordering.
func parseResults(sr *db.SearchResult) []domain.Snippet {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	snippets := make([]domain.Snippet, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		snippets = append(snippets, domain.Snippet{
			Text:     entry.Text,
			Metadata: entry.Metadata,
			Score:    entry.Score,
		})
	}

	return snippets
}
