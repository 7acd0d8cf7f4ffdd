package api

import (
	"context"
	"net/http"

	"github.com/okian/brokerlens/internal/domain/model"
)

// DatasetDependencies exposes the fixture dataset.
type DatasetDependencies interface {
	Dataset(ctx context.Context) (model.Dataset, error)
}

// ReloadDependencies triggers a dataset reload.
type ReloadDependencies interface {
	Reload(ctx context.Context) error
}

// DatasetHandler handles dataset requests.
type DatasetHandler struct {
	deps DatasetDependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps DatasetDependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

// HandleGetDataset handles GET /dataset requests.
func (h *DatasetHandler) HandleGetDataset(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dataset"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, err := h.deps.Dataset(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

type reloadResponse struct {
	Status string `json:"status"`
}

// HandleReload handles POST /reload requests.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := h.deps.Reload(r.Context()); err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded"})
}
