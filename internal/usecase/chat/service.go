// Package chat orchestrates the query pipeline: embed the question, search
// the knowledge base, and generate a grounded answer.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/request"
)

// Reply is the orchestrator's answer to one chat query. Sources keep the
// index ordering; Degraded marks a substituted fallback answer.
type Reply struct {
	Answer   string
	Sources  []domain.Snippet
	Degraded bool
}

// Service handles chat queries end to end.
type Service struct {
	embed    Embedder
	repo     Retriever
	gen      Generator
	outcomes *prometheus.CounterVec
	logger   *zap.Logger
}

// New creates a chat service. gen may be nil when no generation credentials
// are configured; queries then degrade to the fallback answer without any
// network call. outcomes is a counter vec with label "outcome", passed
// explicitly (nil disables it).
func New(
	embed Embedder,
	repo Retriever,
	gen Generator,
	outcomes *prometheus.CounterVec,
	logger *zap.Logger,
) *Service {
	return &Service{
		embed:    embed,
		repo:     repo,
		gen:      gen,
		outcomes: outcomes,
		logger:   logger,
	}
}

// Query answers a validated chat request. Each upstream is called exactly
// once, in order: embed, search, generate. Generation is skipped when the
// search returns nothing.
//
// Errors returned here are pipeline failures; a degraded generation is not
// an error and yields a Reply with the fallback answer.
func (s *Service) Query(ctx context.Context, req *request.Request) (Reply, error) {
	embResult, err := s.embed.Embed(ctx, req.Question())
	if err != nil {
		return Reply{}, fmt.Errorf("vectorize question: %w", err)
	}

	snippets, err := s.repo.Search(ctx, embResult.Embedding, req.Filters(), req.TopK())
	if err != nil {
		return Reply{}, fmt.Errorf("search snippets: %w", err)
	}

	if len(snippets) == 0 {
		s.incOutcome("skipped")
		return Reply{Answer: FallbackAnswer, Sources: []domain.Snippet{}}, nil
	}

	result := s.generate(ctx, req.Question(), snippets)
	switch result.Outcome() {
	case domain.GenerationDegraded:
		s.incOutcome("degraded")
		s.logger.Warn("Generation degraded to fallback answer", zap.Error(result.Cause()))
		return Reply{Answer: result.Answer(), Sources: snippets, Degraded: true}, nil
	case domain.GenerationFatal:
		s.incOutcome("fatal")
		return Reply{}, fmt.Errorf("generate answer: %w", result.Cause())
	}

	s.incOutcome("ok")
	return Reply{Answer: result.Answer(), Sources: snippets}, nil
}

// generate runs one generation attempt and classifies the outcome.
// Provider unavailability degrades; anything else is fatal.
func (s *Service) generate(ctx context.Context, question string, snippets []domain.Snippet) domain.GenerationResult {
	if s.gen == nil {
		return domain.NewGenerationDegraded(FallbackAnswer, domain.ErrGeneratorNotConfigured)
	}

	prompt := BuildPrompt(question, snippets)

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationUnavailable) {
			return domain.NewGenerationDegraded(FallbackAnswer, err)
		}
		return domain.NewGenerationFatal(err)
	}

	answer := cleanAnswer(prompt, raw)
	if answer == "" {
		return domain.NewGenerationDegraded(FallbackAnswer, errors.New("generator returned an empty answer"))
	}

	return domain.NewGenerationOK(answer)
}

func (s *Service) incOutcome(outcome string) {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}
}
