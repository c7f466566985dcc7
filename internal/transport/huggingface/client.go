// Package huggingface talks to the Hugging Face Inference API over plain
// HTTP: the feature-extraction pipeline for embeddings and hosted text
// generation for answers.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the hosted Inference API endpoint.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// requestOptions is the Inference API "options" object. Waiting for the
// model turns a cold start into a slow response instead of a 503.
type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// postJSON sends a JSON payload with bearer auth. The caller owns the
// response body.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}
	return resp, nil
}

// errorDetail extracts a short message from a non-200 response body.
// The API reports errors as {"error": "..."}.
func errorDetail(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 512))

	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(raw))
}

// headOK probes an endpoint with a HEAD request.
func headOK(ctx context.Context, client *http.Client, url, apiKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("health check: HTTP %d", resp.StatusCode)
	}
	return nil
}
