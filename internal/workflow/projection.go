package workflow

import (
	"fleetbook/internal/approval"
	"fleetbook/internal/booking"
)

// Progress values summarize where a booking sits in the sign-off chain.
const (
	ProgressPending        = "pending"
	ProgressApprovedLevel1 = "approved_level1"
	ProgressFullyApproved  = "fully_approved"
	ProgressRejected       = "rejected"
)

// Progress is a pure read-side projection over a booking and its approvals.
// It is computed on demand and never stored, so it cannot diverge from the
// underlying rows.
func Progress(status booking.Status, approvals []approval.Approval) string {
	if status == booking.StatusRejected {
		return ProgressRejected
	}

	var level1, level2 *approval.Approval
	for i := range approvals {
		switch approvals[i].Level {
		case approval.Level1:
			level1 = &approvals[i]
		case approval.Level2:
			level2 = &approvals[i]
		}
	}

	if level1 != nil && level1.Status == approval.StatusRejected {
		return ProgressRejected
	}
	if level2 != nil && level2.Status == approval.StatusRejected {
		return ProgressRejected
	}
	if level2 != nil && level2.Status == approval.StatusApproved {
		return ProgressFullyApproved
	}
	if level1 != nil && level1.Status == approval.StatusApproved {
		// No level-2 record is defensive only; creation always writes both.
		if level2 == nil {
			return ProgressFullyApproved
		}
		return ProgressApprovedLevel1
	}
	return ProgressPending
}
