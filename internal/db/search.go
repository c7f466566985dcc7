package db

import "github.com/jobportal-labs/ragchat/internal/domain/chat/filter"

// VectorQuery is the input for vector similarity search.
type VectorQuery struct {
	Collection    string // collection holding the indexed documents
	Index         string // Atlas vector index name
	Path          string // document path of the embedding field
	Vector        []float32
	NumCandidates int
	Limit         int
	Filters       filter.Filter
}

// SearchResult is the output of a vector search, in the index's
// descending-score order.
type SearchResult struct {
	Entries []SearchEntry
}

// SearchEntry is a single document hit: the projected text, its metadata
// attributes, and the similarity score. Internal identifiers are not
// included.
type SearchEntry struct {
	Text     string
	Metadata map[string]any
	Score    float64
}
