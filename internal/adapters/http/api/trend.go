package api

import (
	"context"
	"net/http"
	"strconv"
)

// TrendDependencies defines the interface for trend chart rendering.
type TrendDependencies interface {
	TrendChart(ctx context.Context, id string) ([]byte, error)
}

// TrendHandler serves revenue trend charts.
type TrendHandler struct {
	deps TrendDependencies
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps TrendDependencies) *TrendHandler {
	return &TrendHandler{deps: deps}
}

// HandleGetTrend handles GET /trend/{navigator_id}.png requests.
func (h *TrendHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trend"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := pathID(r.URL.Path, "/trend/", ".png")
	if !ok {
		writeServiceError(w, NewKind(op, ErrBadRequest))
		return
	}
	img, err := h.deps.TrendChart(r.Context(), id)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
