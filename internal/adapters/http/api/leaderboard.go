// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/brokerlens/internal/domain/valuemap"
)

const defaultLeaderboardLimit = 10

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, by valuemap.Order, n int) ([]Entry, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	if maxLimit <= 0 {
		maxLimit = defaultMaxLeaderboardLimit
	}
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N&by=value|revenue requests.
// limit defaults to 10 (capped at the maximum) and by defaults to value.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	n := min(defaultLeaderboardLimit, h.maxLimit)
	if limitStr := q.Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeServiceError(w, NewKind(op, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)))
			return
		}
	}
	if n > h.maxLimit {
		writeServiceError(w, NewKind(op, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, h.maxLimit)))
		return
	}

	by := valuemap.ByValue
	if v := q.Get("by"); v != "" {
		by = valuemap.Order(v)
		if !by.Valid() {
			writeServiceError(w, NewKind(op, fmt.Errorf("%w: by must be value or revenue", ErrBadRequest)))
			return
		}
	}

	entries, err := h.deps.Leaderboard(r.Context(), by, n)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// allowMethod writes 405 and returns false when r does not use method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}
