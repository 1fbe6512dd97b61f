// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActivitiesDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	metricsHandler    *MetricsHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	logger            logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger enables per-request access logging.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:     NewHealthHandler(),
		metricsHandler:    NewMetricsHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", s.instrument(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", s.instrument(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /activities", s.instrument(s.activitiesHandler.HandleList, "activities"))
	mux.HandleFunc("GET /activities/{name}", s.instrument(s.activitiesHandler.HandleGet, "activity"))
	mux.HandleFunc("POST /activities/{name}/signup", s.instrument(s.activitiesHandler.HandleSignup, "signup"))
	mux.HandleFunc("DELETE /activities/{name}/unregister", s.instrument(s.activitiesHandler.HandleUnregister, "unregister"))
}

func (s *Server) instrument(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(next, endpoint), s.logger)
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = detailOf(err)
	}
	writeJSON(w, status, errorResponse{Code: code, Detail: msg})
}

// detailOf returns the innermost registry message so clients see
// "activity not found" rather than the wrapped operation chain.
func detailOf(err error) string {
	for _, kind := range []error{
		repository.ErrNotFound,
		repository.ErrAlreadySignedUp,
		repository.ErrNotSignedUp,
		repository.ErrActivityFull,
		service.ErrMissingEmail,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}

// classify translates domain errors into an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return http.StatusBadRequest, "already_signed_up"
	case errors.Is(err, repository.ErrNotSignedUp):
		return http.StatusBadRequest, "not_signed_up"
	case errors.Is(err, repository.ErrActivityFull):
		return http.StatusBadRequest, "activity_full"
	case errors.Is(err, service.ErrMissingEmail), errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
