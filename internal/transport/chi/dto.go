package chi

import (
	"fmt"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/filter"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/request"
	healthuc "github.com/jobportal-labs/ragchat/internal/usecase/health"
)

// QueryRequest is the POST /api/v1/chat/query body. Filters arrive as a
// raw JSON object and are validated by filter.Parse; topK distinguishes
// "absent" from an explicit zero.
type QueryRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters,omitempty"`
	TopK    *int           `json:"topK,omitempty"`
}

// QueryResponse is a successful answer. Sources is always present, empty
// when the index returned nothing.
type QueryResponse struct {
	Success bool            `json:"success"`
	Answer  string          `json:"answer"`
	Sources []SourceSnippet `json:"sources"`
}

// SourceSnippet is one retrieved knowledge chunk, in index order.
type SourceSnippet struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse reports the aggregated and per-component health status.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// chatRequestFromDTO validates the wire request into a domain request.
// All errors are client errors carrying a safe, field-specific message.
func chatRequestFromDTO(req QueryRequest) (request.Request, error) {
	filters, err := filter.Parse(req.Filters)
	if err != nil {
		return request.Request{}, fmt.Errorf("parse filters: %w", err)
	}

	topK := request.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	r, err := request.New(req.Query, topK, filters)
	if err != nil {
		return request.Request{}, fmt.Errorf("build chat request: %w", err)
	}
	return r, nil
}

func sourcesToDTO(snippets []domain.Snippet) []SourceSnippet {
	items := make([]SourceSnippet, len(snippets))
	for i, s := range snippets {
		items[i] = SourceSnippet{
			Text:     s.Text,
			Metadata: s.Metadata,
			Score:    s.Score,
		}
	}
	return items
}

func healthToDTO(report healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	}
}
