package driver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetbook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	var status Status
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := ParseStatus(s)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid status filter")
			return
		}
		status = parsed
	}

	items, err := h.Repo.List(r.Context(), status)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	if items == nil {
		items = []Driver{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "driver not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

type UpsertRequest struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "name is required")
		return
	}

	d, err := h.Repo.Create(r.Context(), req.Name, req.LicenseNumber)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(d)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "name is required")
		return
	}

	if err := h.Repo.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.LicenseNumber); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "driver not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "driver not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
