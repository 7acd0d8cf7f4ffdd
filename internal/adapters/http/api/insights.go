package api

import (
	"context"
	"net/http"

	"github.com/okian/brokerlens/internal/domain/insight"
)

// InsightDependencies defines the interface for the harm insight summary.
type InsightDependencies interface {
	Insight(ctx context.Context) (insight.Summary, error)
}

// InsightHandler handles insight requests.
type InsightHandler struct {
	deps InsightDependencies
}

// NewInsightHandler creates a new insight handler.
func NewInsightHandler(deps InsightDependencies) *InsightHandler {
	return &InsightHandler{deps: deps}
}

// HandleGetInsights handles GET /insights requests.
func (h *InsightHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	summary, err := h.deps.Insight(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
