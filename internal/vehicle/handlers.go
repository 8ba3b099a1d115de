package vehicle

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
		items = []Vehicle{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "vehicle not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type UpsertRequest struct {
	LicensePlate    string `json:"licensePlate"`
	Type            string `json:"type"`
	FuelConsumption string `json:"fuelConsumption"`
}

func (req UpsertRequest) parse() (string, string, decimal.Decimal, *api.Error) {
	if req.LicensePlate == "" {
		return "", "", decimal.Zero, api.ValidationFailed("license plate is required")
	}
	fc := decimal.Zero
	if req.FuelConsumption != "" {
		parsed, err := decimal.NewFromString(req.FuelConsumption)
		if err != nil || parsed.IsNegative() {
			return "", "", decimal.Zero, api.ValidationFailed("fuel consumption must be a non-negative number")
		}
		fc = parsed
	}
	return req.LicensePlate, req.Type, fc, nil
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	plate, vtype, fc, verr := req.parse()
	if verr != nil {
		api.WriteWorkflowError(w, verr)
		return
	}

	v, err := h.Repo.Create(r.Context(), plate, vtype, fc)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	plate, vtype, fc, verr := req.parse()
	if verr != nil {
		api.WriteWorkflowError(w, verr)
		return
	}

	if err := h.Repo.Update(r.Context(), chi.URLParam(r, "id"), plate, vtype, fc); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "vehicle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "vehicle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus is the manual status override for maintenance workflows (moving a
// vehicle in and out of service). Booking-driven status is owned by the
// status refresher and cancellation.
func (h Handlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid status")
		return
	}

	if err := h.Repo.SetStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "vehicle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
