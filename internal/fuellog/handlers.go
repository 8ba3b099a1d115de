package fuellog

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
	_ = json.NewEncoder(w).Encode(map[string]any{
		"items": items,
		"total": TotalAmount(items),
	})
}

type CreateRequest struct {
	Amount  string `json:"amount"`
	LogDate string `json:"logDate"` // YYYY-MM-DD
	Notes   string `json:"notes"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "amount must be a positive number")
		return
	}
	logDate, err := time.Parse("2006-01-02", req.LogDate)
	if err != nil {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "logDate must be YYYY-MM-DD")
		return
	}

	rec, err := h.Repo.Create(r.Context(), chi.URLParam(r, "id"), amount, logDate, req.Notes)
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
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "fuel log not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
