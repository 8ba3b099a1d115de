package usagelog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fleetbook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Repo.GetByBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "usage log not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"usageLog":   rec,
		"distanceKm": rec.Distance(),
		"efficiency": rec.Efficiency(),
	})
}

type CreateRequest struct {
	StartKM  int64  `json:"startKm"`
	EndKM    int64  `json:"endKm"`
	FuelUsed string `json:"fuelUsed"`
	Notes    string `json:"notes"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.EndKM < req.StartKM {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "endKm must not be less than startKm")
		return
	}

	fuelUsed := decimal.Zero
	if req.FuelUsed != "" {
		parsed, err := decimal.NewFromString(req.FuelUsed)
		if err != nil || parsed.IsNegative() {
			api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "fuelUsed must be a non-negative number")
			return
		}
		fuelUsed = parsed
	}

	rec, err := h.Repo.Create(r.Context(), chi.URLParam(r, "id"), req.StartKM, req.EndKM, fuelUsed, req.Notes)
	if err != nil {
		// The unique constraint on booking_id means a second log is a conflict.
		api.WriteError(w, http.StatusConflict, api.CodeConflict, "usage log already recorded for this booking")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rec)
}
