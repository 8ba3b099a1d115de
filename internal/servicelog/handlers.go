package servicelog

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fleetbook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListByVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	if items == nil {
		items = []Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

type CreateRequest struct {
	ServiceDate string `json:"serviceDate"` // YYYY-MM-DD
	ServiceType string `json:"serviceType"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.ServiceType == "" {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "serviceType is required")
		return
	}

	serviceDate, err := time.Parse("2006-01-02", req.ServiceDate)
	if err != nil {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "serviceDate must be YYYY-MM-DD")
		return
	}
	cost := decimal.Zero
	if req.Cost != "" {
		cost, err = decimal.NewFromString(req.Cost)
		if err != nil || cost.IsNegative() {
			api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "cost must be a non-negative number")
			return
		}
	}

	rec, err := h.Repo.Create(r.Context(), chi.URLParam(r, "id"), serviceDate, req.ServiceType, req.Description, cost)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rec)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "logId")); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "service log not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
