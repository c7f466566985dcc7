package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a missing or whitespace-only query text.
	ErrEmptyQuery = errors.New("query text is required")
	// ErrInvalidTopK signals a non-positive result limit.
	ErrInvalidTopK = errors.New("topK must be a positive integer")
	// ErrInvalidFilter signals a filter that fits no recognized shape.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSearchFailed signals a vector index failure.
	ErrSearchFailed = errors.New("vector search failed")

	// ErrGenerationUnavailable signals a network, HTTP, or response-shape
	// failure inside the answer generator. Absorbed into a fallback answer,
	// never surfaced as a request failure.
	ErrGenerationUnavailable = errors.New("generation unavailable")
	// ErrGeneratorNotConfigured signals that no generator credentials were
	// provided at startup.
	ErrGeneratorNotConfigured = errors.New("generator not configured")
)

// FilterFieldError wraps ErrInvalidFilter with the offending field name.
type FilterFieldError struct {
	Field  string
	Detail string
}

func (e *FilterFieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrInvalidFilter.Error(), e.Field, e.Detail)
}

func (e *FilterFieldError) Unwrap() error { return ErrInvalidFilter }

// NewFilterFieldError creates a field-specific filter error.
func NewFilterFieldError(field, detail string) error {
	return &FilterFieldError{Field: field, Detail: detail}
}
