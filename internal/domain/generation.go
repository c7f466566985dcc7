package domain

import "context"

// Generator produces a free-text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationOutcome classifies how a generation attempt ended.
type GenerationOutcome int

const (
	// GenerationOK means the generator produced an answer.
	GenerationOK GenerationOutcome = iota
	// GenerationDegraded means the generator was unreachable or returned
	// garbage and a fallback answer was substituted. The request still
	// succeeds.
	GenerationDegraded
	// GenerationFatal means the generation call itself was invalid.
	// The request fails.
	GenerationFatal
)

// GenerationResult is the outcome of a single generation attempt.
// Exactly one of Answer or Cause is meaningful for OK and Fatal;
// Degraded carries both the substituted answer and the cause.
type GenerationResult struct {
	outcome GenerationOutcome
	answer  string
	cause   error
}

// NewGenerationOK creates a successful generation result.
func NewGenerationOK(answer string) GenerationResult {
	return GenerationResult{outcome: GenerationOK, answer: answer}
}

// NewGenerationDegraded creates a degraded result carrying the substituted
// fallback answer and the underlying cause.
func NewGenerationDegraded(fallback string, cause error) GenerationResult {
	return GenerationResult{outcome: GenerationDegraded, answer: fallback, cause: cause}
}

// NewGenerationFatal creates a fatal generation result.
func NewGenerationFatal(cause error) GenerationResult {
	return GenerationResult{outcome: GenerationFatal, cause: cause}
}

// Outcome returns the result classification.
func (r GenerationResult) Outcome() GenerationOutcome { return r.outcome }

// Answer returns the generated or substituted answer text.
func (r GenerationResult) Answer() string { return r.answer }

// Cause returns the underlying error for degraded and fatal results.
func (r GenerationResult) Cause() error { return r.cause }
