package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces they actually use (ISP).
type Store interface {
	Pinger
	VectorSearcher
	DocumentReader
	DocumentWriter
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// VectorSearcher runs approximate nearest-neighbor searches.
type VectorSearcher interface {
	SearchVector(ctx context.Context, q *VectorQuery) (*SearchResult, error)
}

// DocumentReader reads whole collections. out must be a pointer to a
// slice of the target document type.
type DocumentReader interface {
	FindAll(ctx context.Context, collection string, out any) error
}

// DocumentWriter writes documents keyed by a filter.
type DocumentWriter interface {
	Upsert(ctx context.Context, collection string, key, set bson.M) error
}
