package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/metrics"
)

const (
	// DefaultMaxNewTokens bounds the generated answer length.
	DefaultMaxNewTokens = 300

	// DefaultGenerationTimeout is the upper bound on one generation call.
	DefaultGenerationTimeout = 30 * time.Second
)

// Generator produces answers through hosted text generation. API and
// network failures are reported as domain.ErrGenerationUnavailable so the
// caller can degrade to a fallback answer instead of failing the request.
type Generator struct {
	client       *http.Client
	url          string
	apiKey       string
	model        string
	maxNewTokens int
	timeout      time.Duration
	provider     string
	logger       *zap.Logger
}

// GeneratorConfig holds the text generation provider settings.
type GeneratorConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxNewTokens int
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewGenerator creates a hosted text generation provider.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	maxNewTokens := cfg.MaxNewTokens
	if maxNewTokens <= 0 {
		maxNewTokens = DefaultMaxNewTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}

	return &Generator{
		client:       &http.Client{},
		url:          fmt.Sprintf("%s/models/%s", strings.TrimRight(base, "/"), cfg.Model),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		maxNewTokens: maxNewTokens,
		timeout:      timeout,
		provider:     providerName,
		logger:       cfg.Logger,
	}
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
	Options    requestOptions       `json:"options"`
}

// generationParameters pin decoding: no sampling and a bounded answer.
// return_full_text keeps the prompt echo in the response; the caller
// strips it.
type generationParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	DoSample       bool `json:"do_sample"`
	ReturnFullText bool `json:"return_full_text"`
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

// Generate implements domain.Generator with deterministic decoding and a
// fixed timeout.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("generate: empty prompt")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()

	resp, err := postJSON(ctx, g.client, g.url, g.apiKey, generationRequest{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxNewTokens:   g.maxNewTokens,
			DoSample:       false,
			ReturnFullText: true,
		},
		Options: requestOptions{WaitForModel: true},
	})

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		g.logger.Warn("Generation request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: text generation: %w", domain.ErrGenerationUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail := errorDetail(resp.Body)
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		g.logger.Warn("Generation request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return "", fmt.Errorf("%w: text generation HTTP %d: %s",
			domain.ErrGenerationUnavailable, resp.StatusCode, detail)
	}

	var completions []generatedText
	if err := json.NewDecoder(resp.Body).Decode(&completions); err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		return "", fmt.Errorf("%w: decode generation response: %w", domain.ErrGenerationUnavailable, err)
	}
	if len(completions) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		return "", fmt.Errorf("%w: generation response has no completions", domain.ErrGenerationUnavailable)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.provider, g.model).Observe(duration.Seconds())

	g.logger.Debug("Generation request completed",
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.Duration("duration", duration),
		zap.Int("answer_chars", len(completions[0].GeneratedText)),
	)

	return completions[0].GeneratedText, nil
}

// HealthCheck probes the model endpoint.
func (g *Generator) HealthCheck(ctx context.Context) error {
	return headOK(ctx, g.client, g.url, g.apiKey)
}
