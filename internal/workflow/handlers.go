package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetbook/internal/api"
	"fleetbook/internal/approval"
	"fleetbook/internal/booking"
	"fleetbook/internal/user"
)

const dateLayout = "2006-01-02"

type Handlers struct {
	Workflow *Workflow
}

type CreateBookingRequest struct {
	VehicleID        string `json:"vehicleId"`
	DriverID         string `json:"driverId"`
	StartDate        string `json:"startDate"` // YYYY-MM-DD
	EndDate          string `json:"endDate"`   // YYYY-MM-DD
	Purpose          string `json:"purpose"`
	ApproverLevel1ID string `json:"approverLevel1Id"`
	ApproverLevel2ID string `json:"approverLevel2Id"`
}

func (h Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing user identity")
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		api.WriteError(w, http.StatusUnprocessableEntity, api.CodeValidationFailed, "endDate must be YYYY-MM-DD")
		return
	}

	b, err := h.Workflow.CreateBooking(r.Context(), u, CreateInput{
		VehicleID:        req.VehicleID,
		DriverID:         req.DriverID,
		StartDate:        start,
		EndDate:          end,
		Purpose:          req.Purpose,
		ApproverLevel1ID: req.ApproverLevel1ID,
		ApproverLevel2ID: req.ApproverLevel2ID,
	})
	if err != nil {
		api.WriteWorkflowError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

func (h Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing user identity")
		return
	}

	var f booking.ListFilter
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := booking.ParseStatus(s)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid status filter")
			return
		}
		f.Status = parsed
	}
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "from must be YYYY-MM-DD")
			return
		}
		f.DateFrom = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "to must be YYYY-MM-DD")
			return
		}
		f.DateTo = t
	}
	if r.URL.Query().Get("mine") == "true" {
		f.UserID = u.ID
	}

	items, err := h.Workflow.Bookings.List(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	if items == nil {
		items = []booking.Booking{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func (h Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Workflow.Bookings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "booking not found")
		return
	}

	approvals, err := h.Workflow.Approvals.ListByBooking(r.Context(), b.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"booking":        b,
		"approvals":      approvals,
		"approvalStatus": Progress(b.Status, approvals),
	})
}

func (h Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing user identity")
		return
	}

	if err := h.Workflow.Cancel(r.Context(), chi.URLParam(r, "id"), u); err != nil {
		api.WriteWorkflowError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListApprovers returns users holding a role, for the approver pickers on
// the booking form. Defaults to level-1 approvers.
func (h Handlers) ListApprovers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = user.RoleApproverLevel1
	}
	switch role {
	case user.RoleRequester, user.RoleApproverLevel1, user.RoleApproverLevel2, user.RoleAdmin:
	default:
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "unknown role")
		return
	}

	users, err := h.Workflow.Users.ListByRole(r.Context(), role)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	if users == nil {
		users = []user.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"users": users})
}

// ListPendingApprovals returns the pending approvals at every level the
// acting user may resolve.
func (h Handlers) ListPendingApprovals(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing user identity")
		return
	}

	var levels []int
	for _, level := range []int{approval.Level1, approval.Level2} {
		if u.HasLevelCapability(level) {
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		api.WriteError(w, http.StatusForbidden, api.CodeUnauthorized, "you hold no approver capability")
		return
	}

	items, err := h.Workflow.Approvals.ListPendingForLevels(r.Context(), levels)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	if items == nil {
		items = []approval.Approval{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

type ResolveRequest struct {
	Notes string `json:"notes"`
}

func (h Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.Workflow.Approve)
}

func (h Handlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.Workflow.Reject)
}

func (h Handlers) resolve(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, approvalID string, actingUser *user.User, notes string) (*Outcome, error)) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing user identity")
		return
	}

	var req ResolveRequest
	if r.Body != nil {
		// Notes are optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	out, err := op(r.Context(), chi.URLParam(r, "id"), u, req.Notes)
	if err != nil {
		api.WriteWorkflowError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
