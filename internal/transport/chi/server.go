// Package chi provides the HTTP transport for the people search API.
package chi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/domain"
	healthuc "github.com/collabdays/peoplefinder/internal/usecase/health"
	peopleuc "github.com/collabdays/peoplefinder/internal/usecase/people"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest = "bad_request"
)

// Server exposes the people search pipeline over HTTP.
type Server struct {
	people *peopleuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(people *peopleuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{people: people, health: health, logger: logger}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/people/search", s.SearchPeople)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchResponse is the body of a successful people search.
type searchResponse struct {
	Query  string          `json:"query"`
	Count  int             `json:"count"`
	People []domain.Person `json:"people"`
}

// errorResponse is the body of any error reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// SearchPeople handles GET /people/search?q=...
func (s *Server) SearchPeople(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "query parameter q is required")
		return
	}

	people := s.people.Search(r.Context(), query)

	writeJSON(w, http.StatusOK, searchResponse{
		Query:  query,
		Count:  len(people),
		People: people,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
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

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
