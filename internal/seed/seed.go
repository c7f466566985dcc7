// Package seed loads an idempotent demo dataset for the portal: users,
// companies, jobs, and applications with fixed ids, so the indexer and the
// chat API have real-looking data to work against.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/db"
)

// store is the database surface the seeder needs.
type store interface {
	db.DocumentWriter
}

// Seeder upserts the demo dataset.
type Seeder struct {
	store  store
	logger *zap.Logger
}

// Result summarizes one seeding run.
type Result struct {
	Documents int
	Duration  time.Duration
}

// New creates a seeder.
func New(s store, logger *zap.Logger) *Seeder {
	return &Seeder{store: s, logger: logger}
}

// Run upserts every demo document by its fixed _id. Rerunning restores
// any document that was edited or deleted since the last run.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	var total int

	for _, col := range demoData() {
		for _, d := range col.docs {
			key := bson.M{"_id": d.id}
			if err := s.store.Upsert(ctx, col.name, key, d.set); err != nil {
				return Result{Documents: total, Duration: time.Since(start)},
					fmt.Errorf("seed %s %s: %w", col.name, d.id.Hex(), err)
			}
			total++
		}
		s.logger.Info("Seeded collection",
			zap.String("collection", col.name),
			zap.Int("documents", len(col.docs)))
	}

	return Result{Documents: total, Duration: time.Since(start)}, nil
}
