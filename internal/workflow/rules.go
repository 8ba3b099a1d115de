package workflow

import (
	"time"

	"fleetbook/internal/api"
	"fleetbook/internal/approval"
	"fleetbook/internal/booking"
)

// nextOnApprove is the booking status an approval at the given level
// advances to. Level 1 leaves the booking awaiting level 2.
func nextOnApprove(level int) booking.Status {
	if level == approval.Level2 {
		return booking.StatusApproved
	}
	return booking.StatusApproved1
}

// resolvedGuard blocks re-resolving an approval that already reached a
// terminal status. Resolved approvals are immutable: a second approve or
// reject is a conflict, never a silent reapply.
func resolvedGuard(a *approval.Approval) *api.Error {
	if a.Status.Resolved() {
		return api.Conflict("approval is already resolved")
	}
	return nil
}

// level2ApproveGate enforces the ordering rule: level 2 may approve only
// after level 1 approved. A missing level-1 record is defensive only
// (creation always writes both levels) and maps to the same failure.
func level2ApproveGate(level1 *approval.Approval) *api.Error {
	if level1 == nil || level1.Status != approval.StatusApproved {
		return api.PreconditionFailed("level 1 approval must complete first")
	}
	return nil
}

// level2RejectGate enforces the ordering rules for rejection: level 1 must
// have resolved, and a second rejection after level 1 already rejected is
// redundant and blocked.
func level2RejectGate(level1 *approval.Approval) *api.Error {
	if level1 == nil || level1.Status == approval.StatusPending {
		return api.PreconditionFailed("level 1 must resolve before level 2 can reject")
	}
	if level1.Status == approval.StatusRejected {
		return api.Conflict("booking already rejected by level 1")
	}
	return nil
}

// CreateInput carries a booking request. Dates are calendar dates; the time
// component is ignored.
type CreateInput struct {
	VehicleID        string
	DriverID         string
	StartDate        time.Time
	EndDate          time.Time
	Purpose          string
	ApproverLevel1ID string
	ApproverLevel2ID string
}

const maxPurposeLen = 500

// ValidateCreate checks the request fields that need no database access.
func ValidateCreate(in CreateInput, now time.Time) *api.Error {
	switch {
	case in.VehicleID == "":
		return api.ValidationFailed("vehicle is required")
	case in.DriverID == "":
		return api.ValidationFailed("driver is required")
	case in.Purpose == "":
		return api.ValidationFailed("purpose is required")
	case len(in.Purpose) > maxPurposeLen:
		return api.ValidationFailed("purpose must be at most 500 characters")
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return api.ValidationFailed("start and end dates are required")
	case in.ApproverLevel1ID == "" || in.ApproverLevel2ID == "":
		return api.ValidationFailed("both approvers are required")
	case in.ApproverLevel1ID == in.ApproverLevel2ID:
		return api.ValidationFailed("level 1 and level 2 approvers must differ")
	}

	today := truncateToDate(now)
	if !truncateToDate(in.StartDate).After(today) {
		return api.ValidationFailed("start date must be in the future")
	}
	if truncateToDate(in.EndDate).Before(truncateToDate(in.StartDate)) {
		return api.ValidationFailed("end date must not be before start date")
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
