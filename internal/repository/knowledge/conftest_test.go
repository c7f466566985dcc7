package knowledge

import (
	"context"
	"testing"

	"github.com/jobportal-labs/ragchat/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchVectorFn func(ctx context.Context, q *db.VectorQuery) (*db.SearchResult, error)
	calls          int
}

func (m *mockStore) SearchVector(ctx context.Context, q *db.VectorQuery) (*db.SearchResult, error) {
	m.calls++
	if m.searchVectorFn != nil {
		return m.searchVectorFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, Config{
		Collection: "knowledge_docs",
		Index:      "vector_index",
		Path:       "embedding",
	})
	return repo, ms
}

func testVector() []float32 {
	vec := make([]float32, 4)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec
}
