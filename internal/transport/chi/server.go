// Package chi exposes the chat API over HTTP: the query endpoint plus
// health and Prometheus metrics.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/logger"
	chatuc "github.com/jobportal-labs/ragchat/internal/usecase/chat"
	healthuc "github.com/jobportal-labs/ragchat/internal/usecase/health"
)

// Server holds the HTTP handlers for the chat API. Handlers log through the
// request-scoped logger so every line carries the request id.
type Server struct {
	chat   *chatuc.Service
	health *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(chat *chatuc.Service, health *healthuc.Service) *Server {
	return &Server{
		chat:   chat,
		health: health,
	}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/v1/chat/query", s.ChatQuery)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ChatQuery handles POST /api/v1/chat/query.
func (s *Server) ChatQuery(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Malformed chat request", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	chatReq, err := chatRequestFromDTO(req)
	if err != nil {
		// Validation messages are built from client input and our own
		// text; they name the offending field and are safe to return.
		log.Warn("Rejected chat query", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.chat.Query(r.Context(), &chatReq)
	if err != nil {
		// Everything past validation is an internal error: the embedding
		// provider, the index, and generator argument failures all map to
		// a generic 500. Degraded generation never reaches here.
		log.Error("Chat query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Success: true,
		Answer:  reply.Answer,
		Sources: sourcesToDTO(reply.Sources),
	})
}

// HealthCheck handles GET /health. Unhealthy means queries cannot be
// answered at all and maps to 503; degraded still serves requests.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   message,
	})
}
