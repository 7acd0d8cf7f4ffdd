// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/brokerlens/internal/adapters/repository"
	service "github.com/okian/brokerlens/internal/app"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/internal/render"
)

const defaultMaxLeaderboardLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LeaderboardDependencies
	RankDependencies
	TrendDependencies
	InsightDependencies
	DatasetDependencies
	ReloadDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxLeaderboardLimit caps GET /leaderboard?limit.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxLimit int

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	trendHandler       *TrendHandler
	insightHandler     *InsightHandler
	datasetHandler     *DatasetHandler
	reloadHandler      *ReloadHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxLimit: defaultMaxLeaderboardLimit}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.maxLimit)
	s.rankHandler = NewRankHandler(deps)
	s.trendHandler = NewTrendHandler(deps)
	s.insightHandler = NewInsightHandler(deps)
	s.datasetHandler = NewDatasetHandler(deps)
	s.reloadHandler = NewReloadHandler(deps)
	s.dashboardHandler = newDashboardHandler()
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/trend/", MetricsMiddleware(s.trendHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/insights", MetricsMiddleware(s.insightHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/dataset", MetricsMiddleware(s.datasetHandler.HandleGetDataset, "dataset"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates upstream errors into status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ErrLimitExceeded):
		writeError(w, http.StatusBadRequest, "limit_exceeded", err)
	case errors.Is(err, repository.ErrInvalidDataset),
		errors.Is(err, render.ErrTooFewPoints):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
