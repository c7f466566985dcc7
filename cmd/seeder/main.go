// Seeder loads the demo portal dataset (users, companies, jobs,
// applications) into MongoDB. Safe to rerun: documents are upserted under
// fixed ids.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/config"
	"github.com/jobportal-labs/ragchat/internal/db/mongodb"
	logpkg "github.com/jobportal-labs/ragchat/internal/logger"
	"github.com/jobportal-labs/ragchat/internal/seed"
)

func main() {
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

	result, err := seed.New(store, logger).Run(ctx)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Seeding finished",
		zap.Int("documents", result.Documents),
		zap.Duration("duration", result.Duration),
	)
}
