// Indexer builds the knowledge base: it embeds every job posting into
// snippet documents the chat API searches. Rerunning re-embeds all jobs
// and overwrites their chunks in place.
//
// Usage:
//
//	indexer -workers 4 -jobs-collection jobs
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/config"
	"github.com/jobportal-labs/ragchat/internal/db/mongodb"
	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/indexer"
	logpkg "github.com/jobportal-labs/ragchat/internal/logger"
	hf "github.com/jobportal-labs/ragchat/internal/transport/huggingface"
	openaiTransport "github.com/jobportal-labs/ragchat/internal/transport/openai"
	embeddinguc "github.com/jobportal-labs/ragchat/internal/usecase/embedding"
)

func main() {
	workers := flag.Int("workers", 4, "number of parallel embedding workers")
	jobsCollection := flag.String("jobs-collection", "jobs", "source collection of job postings")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	store, err := mongodb.NewStore(mongodb.Config{
		URI:      cfg.Database.URI,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	ix := indexer.New(store, buildEmbedder(cfg, logger), indexer.Config{
		JobsCollection:      *jobsCollection,
		KnowledgeCollection: cfg.Index.Collection,
		Workers:             *workers,
	}, logger)

	if _, err := ix.Run(ctx); err != nil {
		logger.Fatal("Indexing failed", zap.Error(err))
	}
}

// buildEmbedder wires the configured provider with logging. The indexer
// embeds each document once, so no cache sits in front of the provider.
func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.Embedder {
	var base domain.Embedder
	switch cfg.Embedding.Provider {
	case "openai":
		base = openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
	default: // "huggingface", guaranteed by config validation
		base = hf.NewEmbedder(&hf.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Logger:  logger,
		})
	}
	return embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)
}
