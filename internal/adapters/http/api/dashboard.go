// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// dashboardHandler handles dashboard requests.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests with the embedded page.
// The page reads /leaderboard, /insights and /trend/{id}.png.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}
