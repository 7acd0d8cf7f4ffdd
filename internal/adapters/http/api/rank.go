// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/brokerlens/internal/domain/model"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Entry(ctx context.Context, id string) (model.NavigatorValueEntry, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{navigator_id} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := pathID(r.URL.Path, "/rank/", "")
	if !ok {
		writeServiceError(w, NewKind(op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Entry(r.Context(), id)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// pathID extracts the single path segment between prefix and suffix.
func pathID(path, prefix, suffix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return "", false
	}
	if suffix != "" {
		if rest, ok = strings.CutSuffix(rest, suffix); !ok {
			return "", false
		}
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
