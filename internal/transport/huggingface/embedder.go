package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/metrics"
)

const providerName = "huggingface"

// Embedder is an embedding provider backed by the feature-extraction
// pipeline of the Inference API.
type Embedder struct {
	client   *http.Client
	url      string
	apiKey   string
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewEmbedder creates a feature-extraction embedding provider. The HTTP
// client carries no timeout: a cold model can take minutes to load, and the
// caller's context bounds the wait.
func NewEmbedder(cfg *Config) *Embedder {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	return &Embedder{
		client:   &http.Client{},
		url:      fmt.Sprintf("%s/pipeline/feature-extraction/%s", strings.TrimRight(base, "/"), cfg.Model),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		provider: providerName,
		logger:   cfg.Logger,
	}
}

type embeddingRequest struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

type batchEmbeddingRequest struct {
	Inputs  []string       `json:"inputs"`
	Options requestOptions `json:"options"`
}

// Embed implements domain.Embedder. The pipeline answers either a flat
// vector or a single-row matrix depending on the model; both shapes are
// accepted. The Inference API reports no token usage.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()

	resp, err := postJSON(ctx, e.client, e.url, e.apiKey, embeddingRequest{
		Inputs:  text,
		Options: requestOptions{WaitForModel: true},
	})
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "request_error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("%w: feature extraction: %w", domain.ErrEmbeddingProviderError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "api_error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("%w: feature extraction HTTP %d: %s",
			domain.ErrEmbeddingProviderError, resp.StatusCode, errorDetail(resp.Body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "request_error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("%w: read response: %w", domain.ErrEmbeddingProviderError, err)
	}

	vector, err := parseVector(raw)
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "decode_error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}

	duration := time.Since(start)
	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, e.model).Observe(duration.Seconds())

	e.logger.Debug("Embedding request completed",
		zap.String("provider", e.provider),
		zap.String("model", e.model),
		zap.Duration("duration", duration),
		zap.Int("dimensions", len(vector)),
	)

	return domain.EmbeddingResult{Embedding: vector}, nil
}

// BatchEmbed implements domain.BatchEmbedder in a single pipeline call.
// Vectors come back in input order.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	start := time.Now()

	resp, err := postJSON(ctx, e.client, e.url, e.apiKey, batchEmbeddingRequest{
		Inputs:  texts,
		Options: requestOptions{WaitForModel: true},
	})
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "request_error").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf("%w: feature extraction: %w", domain.ErrEmbeddingProviderError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "api_error").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf("%w: feature extraction HTTP %d: %s",
			domain.ErrEmbeddingProviderError, resp.StatusCode, errorDetail(resp.Body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "request_error").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf("%w: read response: %w", domain.ErrEmbeddingProviderError, err)
	}

	rows, err := parseVectorRows(raw, len(texts))
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "decode_error").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}

	if len(rows) != len(texts) {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, e.model, "count_mismatch").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf(
			"%w: embedding count mismatch: sent %d texts, got %d vectors",
			domain.ErrEmbeddingProviderError, len(texts), len(rows))
	}

	duration := time.Since(start)
	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, e.model).Observe(duration.Seconds())

	e.logger.Debug("Batch embedding request completed",
		zap.String("provider", e.provider),
		zap.String("model", e.model),
		zap.Duration("duration", duration),
		zap.Int("texts", len(texts)),
	)

	return domain.BatchEmbeddingResult{Embeddings: rows}, nil
}

// HealthCheck probes the pipeline endpoint.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	return headOK(ctx, e.client, e.url, e.apiKey)
}

// parseVector normalizes a single-input pipeline response: [n] floats for
// sentence models, [1][n] for models that keep a batch axis. Anything else
// is malformed.
func parseVector(raw []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 {
			return nil, errors.New("empty embedding response")
		}
		return flat, nil
	}

	var rows [][]float32
	if err := json.Unmarshal(raw, &rows); err == nil {
		switch {
		case len(rows) == 0 || len(rows[0]) == 0:
			return nil, errors.New("empty embedding response")
		case len(rows) > 1:
			return nil, fmt.Errorf("expected one embedding row, got %d", len(rows))
		}
		return rows[0], nil
	}

	return nil, errors.New("unexpected embedding response shape")
}

// parseVectorRows decodes a batch response. A flat vector is accepted for a
// single-text batch.
func parseVectorRows(raw []byte, count int) ([][]float32, error) {
	var rows [][]float32
	if err := json.Unmarshal(raw, &rows); err == nil {
		for i, row := range rows {
			if len(row) == 0 {
				return nil, fmt.Errorf("empty embedding at row %d", i)
			}
		}
		return rows, nil
	}

	if count == 1 {
		var flat []float32
		if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
			return [][]float32{flat}, nil
		}
	}

	return nil, errors.New("unexpected embedding response shape")
}
