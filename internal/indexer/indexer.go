// Package indexer builds the knowledge base: it reads every job posting,
// renders it into text snippets, embeds them, and upserts the result into
// the knowledge collection the chat queries search.
package indexer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/db"
	"github.com/jobportal-labs/ragchat/internal/domain"
)

const defaultWorkers = 4

// store is the database surface the indexer needs.
type store interface {
	db.DocumentReader
	db.DocumentWriter
}

// Config holds collection names and pool sizing.
type Config struct {
	JobsCollection      string
	KnowledgeCollection string
	Workers             int
}

// Indexer embeds job snippets into the knowledge collection.
type Indexer struct {
	store    store
	embedder domain.Embedder
	cfg      Config
	logger   *zap.Logger
}

// Result summarizes one indexing run.
type Result struct {
	Jobs       int64
	Snippets   int64
	FailedJobs int64
	Duration   time.Duration
}

// New creates an indexer.
func New(s store, embedder domain.Embedder, cfg Config, logger *zap.Logger) *Indexer {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Indexer{store: s, embedder: embedder, cfg: cfg, logger: logger}
}

// Run indexes every job once. Jobs fan out to a worker pool; a failed job
// is logged and counted without stopping the run. Reindexing is idempotent
// because chunks are upserted under their (source, chunk) key.
func (ix *Indexer) Run(ctx context.Context) (Result, error) {
	var jobs []Job
	if err := ix.store.FindAll(ctx, ix.cfg.JobsCollection, &jobs); err != nil {
		return Result{}, fmt.Errorf("read jobs: %w", err)
	}

	ix.logger.Info("Indexing jobs",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", ix.cfg.Workers))

	queue := make(chan Job, ix.cfg.Workers*2)
	var wg sync.WaitGroup
	var snippets, failed atomic.Int64

	start := time.Now()

	for i := 0; i < ix.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				n, err := ix.indexJob(ctx, job)
				snippets.Add(n)
				if err != nil {
					failed.Add(1)
					ix.logger.Warn("Failed to index job",
						zap.String("job_id", job.ID.Hex()),
						zap.String("title", job.Title),
						zap.Error(err))
				}
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()

	result := Result{
		Jobs:       int64(len(jobs)),
		Snippets:   snippets.Load(),
		FailedJobs: failed.Load(),
		Duration:   time.Since(start),
	}

	ix.logger.Info("Indexing finished",
		zap.Int64("jobs", result.Jobs),
		zap.Int64("snippets", result.Snippets),
		zap.Int64("failed_jobs", result.FailedJobs),
		zap.Duration("duration", result.Duration))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// indexJob embeds one job's snippets and upserts them. Returns the number
// of snippets stored before any error.
func (ix *Indexer) indexJob(ctx context.Context, job Job) (int64, error) {
	texts := BuildSnippets(job)

	emb, err := embedAll(ctx, ix.embedder, texts)
	if err != nil {
		return 0, fmt.Errorf("embed snippets: %w", err)
	}
	if len(emb.Embeddings) != len(texts) {
		return 0, fmt.Errorf("embed snippets: got %d vectors for %d texts",
			len(emb.Embeddings), len(texts))
	}

	meta := job.metadata()
	var stored int64
	for idx, text := range texts {
		key := bson.M{
			"sourceType": "job",
			"sourceId":   job.ID,
			"chunkIndex": idx,
		}
		set := bson.M{
			"text":      text,
			"metadata":  meta,
			"embedding": emb.Embeddings[idx],
		}
		if err := ix.store.Upsert(ctx, ix.cfg.KnowledgeCollection, key, set); err != nil {
			return stored, fmt.Errorf("upsert chunk %d: %w", idx, err)
		}
		stored++
	}
	return stored, nil
}

// embedAll uses the provider's batch endpoint when it has one.
func embedAll(
	ctx context.Context, e domain.Embedder, texts []string,
) (domain.BatchEmbeddingResult, error) {
	if be, ok := e.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, e, texts)
}
