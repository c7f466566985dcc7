package request

import (
	"fmt"
	"strings"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/filter"
)

// DefaultTopK is the result limit used when the caller omits topK.
const DefaultTopK = 5

// Request is a validated chat query.
type Request struct {
	question string
	topK     int
	filters  filter.Filter
}

// New validates and creates a Request. The question must be non-empty
// after trimming and topK must be positive; callers substitute
// DefaultTopK before calling when the field was absent entirely.
func New(question string, topK int, filters filter.Filter) (Request, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		return Request{}, fmt.Errorf("%w: got %d", domain.ErrInvalidTopK, topK)
	}

	return Request{question: question, topK: topK, filters: filters}, nil
}

// Question returns the trimmed question text.
func (r Request) Question() string { return r.question }

// TopK returns the result limit.
func (r Request) TopK() int { return r.topK }

// Filters returns the parsed filter conjunction.
func (r Request) Filters() filter.Filter { return r.filters }
