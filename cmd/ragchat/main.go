package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/config"
	"github.com/jobportal-labs/ragchat/internal/db/mongodb"
	"github.com/jobportal-labs/ragchat/internal/db/rediscache"
	"github.com/jobportal-labs/ragchat/internal/domain"
	logpkg "github.com/jobportal-labs/ragchat/internal/logger"
	"github.com/jobportal-labs/ragchat/internal/metrics"
	"github.com/jobportal-labs/ragchat/internal/repository/embcache"
	knowledgerepo "github.com/jobportal-labs/ragchat/internal/repository/knowledge"
	chiTransport "github.com/jobportal-labs/ragchat/internal/transport/chi"
	hf "github.com/jobportal-labs/ragchat/internal/transport/huggingface"
	openaiTransport "github.com/jobportal-labs/ragchat/internal/transport/openai"
	chatuc "github.com/jobportal-labs/ragchat/internal/usecase/chat"
	embeddinguc "github.com/jobportal-labs/ragchat/internal/usecase/embedding"
	healthuc "github.com/jobportal-labs/ragchat/internal/usecase/health"
	"github.com/jobportal-labs/ragchat/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting ragchat API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("database", cfg.Database.Database),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("embedding_model", cfg.Embedding.Model),
	)

	store, err := mongodb.NewStore(mongodb.Config{
		URI:      cfg.Database.URI,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	// Wait for database to be ready
	ctx := context.Background()
	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register chat pipeline metrics explicitly (no init())
	metrics.RegisterChatMetrics()

	// Optional embedding cache
	var cache *rediscache.Client
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = rediscache.New(rediscache.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      time.Duration(cfg.Cache.TTLSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create cache client", zap.Error(err))
		}
		defer cache.Close()
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder, embedderCheck := buildEmbedder(cfg, cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
	)

	// Pass nil interface (not typed nil pointer!) when generation is not
	// configured; the chat service degrades to the fallback answer.
	var gen chatuc.Generator
	var genCheck healthuc.GenerationChecker
	if cfg.Generation.APIKey != "" {
		gen, genCheck = buildGenerator(cfg, logger)
		logger.Info("Generator created",
			zap.String("provider", cfg.Generation.Provider),
			zap.String("model", cfg.Generation.Model),
		)
	} else {
		logger.Warn("No generation credentials configured; answers will use the fallback text")
	}

	repo := knowledgerepo.New(store, knowledgerepo.Config{
		Collection: cfg.Index.Collection,
		Index:      cfg.Index.Name,
		Path:       cfg.Index.Path,
	})

	chatSvc := chatuc.New(embedder, repo, gen, metrics.ChatQueriesTotal, logger)
	healthSvc := healthuc.New(store, embedderCheck, genCheck)

	server := chiTransport.NewServer(chatSvc, healthSvc)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: provider -> cached ->
// instrumented. The health checker is taken from the base provider before
// wrapping, since decorators do not forward health probes.
func buildEmbedder(
	cfg config.Config, cache *rediscache.Client, logger *zap.Logger,
) (domain.Embedder, healthuc.EmbeddingChecker) {
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

	embedder := base
	if cache != nil {
		embedder = embcache.New(base, cache, metrics.EmbeddingCacheTotal, logger)
	}
	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)

	check, _ := base.(healthuc.EmbeddingChecker)
	return embedder, check
}

// buildGenerator creates the configured answer generator. Only called when
// generation credentials are present.
func buildGenerator(
	cfg config.Config, logger *zap.Logger,
) (chatuc.Generator, healthuc.GenerationChecker) {
	timeout := time.Duration(cfg.Generation.TimeoutSec) * time.Second

	switch cfg.Generation.Provider {
	case "openai":
		g := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:    cfg.Generation.APIKey,
			BaseURL:   cfg.Generation.BaseURL,
			Model:     cfg.Generation.Model,
			MaxTokens: cfg.Generation.MaxNewTokens,
			Timeout:   timeout,
			Provider:  cfg.Generation.Provider,
			Logger:    logger,
		})
		return g, g
	default: // "huggingface", guaranteed by config validation
		g := hf.NewGenerator(&hf.GeneratorConfig{
			APIKey:       cfg.Generation.APIKey,
			BaseURL:      cfg.Generation.BaseURL,
			Model:        cfg.Generation.Model,
			MaxNewTokens: cfg.Generation.MaxNewTokens,
			Timeout:      timeout,
			Logger:       logger,
		})
		return g, g
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
