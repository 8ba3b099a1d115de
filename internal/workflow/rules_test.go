package workflow

import (
	"testing"
	"time"

	"fleetbook/internal/api"
	"fleetbook/internal/approval"
	"fleetbook/internal/booking"
)

func TestNextOnApprove(t *testing.T) {
	if got := nextOnApprove(approval.Level1); got != booking.StatusApproved1 {
		t.Fatalf("level 1 should yield approved_1, got %s", got)
	}
	if got := nextOnApprove(approval.Level2); got != booking.StatusApproved {
		t.Fatalf("level 2 should yield approved, got %s", got)
	}
}

func TestResolvedGuard(t *testing.T) {
	if err := resolvedGuard(&approval.Approval{Status: approval.StatusPending}); err != nil {
		t.Fatalf("pending approval must be resolvable, got %v", err)
	}

	for _, status := range []approval.Status{approval.StatusApproved, approval.StatusRejected} {
		err := resolvedGuard(&approval.Approval{Status: status})
		if err == nil {
			t.Fatalf("expected guard to block a %s approval", status)
		}
		if err.Code != api.CodeConflict {
			t.Fatalf("expected CONFLICT for re-resolving a %s approval, got %s", status, err.Code)
		}
	}
}

func TestLevel2ApproveGate(t *testing.T) {
	if err := level2ApproveGate(&approval.Approval{Level: 1, Status: approval.StatusApproved}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, status := range []approval.Status{approval.StatusPending, approval.StatusRejected} {
		err := level2ApproveGate(&approval.Approval{Level: 1, Status: status})
		if err == nil {
			t.Fatalf("expected gate to block when level 1 is %s", status)
		}
		if err.Code != api.CodePreconditionFailed {
			t.Fatalf("expected PRECONDITION_FAILED, got %s", err.Code)
		}
	}

	// No level-1 record is defensive only and maps to the same failure.
	if err := level2ApproveGate(nil); err == nil || err.Code != api.CodePreconditionFailed {
		t.Fatalf("expected PRECONDITION_FAILED for missing level 1, got %v", err)
	}
}

func TestLevel2RejectGate(t *testing.T) {
	if err := level2RejectGate(&approval.Approval{Level: 1, Status: approval.StatusApproved}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := level2RejectGate(&approval.Approval{Level: 1, Status: approval.StatusPending})
	if err == nil || err.Code != api.CodePreconditionFailed {
		t.Fatalf("expected PRECONDITION_FAILED for pending level 1, got %v", err)
	}

	err = level2RejectGate(nil)
	if err == nil || err.Code != api.CodePreconditionFailed {
		t.Fatalf("expected PRECONDITION_FAILED for missing level 1, got %v", err)
	}

	err = level2RejectGate(&approval.Approval{Level: 1, Status: approval.StatusRejected})
	if err == nil || err.Code != api.CodeConflict {
		t.Fatalf("expected CONFLICT for double rejection, got %v", err)
	}
}

func validInput(now time.Time) CreateInput {
	return CreateInput{
		VehicleID:        "v1",
		DriverID:         "d1",
		StartDate:        now.AddDate(0, 0, 2),
		EndDate:          now.AddDate(0, 0, 5),
		Purpose:          "site visit",
		ApproverLevel1ID: "a1",
		ApproverLevel2ID: "a2",
	}
}

func TestValidateCreate_OK(t *testing.T) {
	now := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)
	if err := ValidateCreate(validInput(now), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCreate_StartMustBeFuture(t *testing.T) {
	now := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)

	in := validInput(now)
	in.StartDate = now // same day is not "after today"
	if err := ValidateCreate(in, now); err == nil || err.Code != api.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED for same-day start, got %v", err)
	}

	in.StartDate = now.AddDate(0, 0, -1)
	if err := ValidateCreate(in, now); err == nil {
		t.Fatalf("expected error for past start")
	}
}

func TestValidateCreate_EndBeforeStart(t *testing.T) {
	now := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)

	in := validInput(now)
	in.EndDate = in.StartDate.AddDate(0, 0, -1)
	if err := ValidateCreate(in, now); err == nil {
		t.Fatalf("expected error for end before start")
	}

	// Single-day bookings are allowed.
	in.EndDate = in.StartDate
	if err := ValidateCreate(in, now); err != nil {
		t.Fatalf("unexpected error for single-day booking: %v", err)
	}
}

func TestValidateCreate_ApproversMustDiffer(t *testing.T) {
	now := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)

	in := validInput(now)
	in.ApproverLevel2ID = in.ApproverLevel1ID
	if err := ValidateCreate(in, now); err == nil {
		t.Fatalf("expected error for identical approvers")
	}
}

func TestValidateCreate_PurposeRequired(t *testing.T) {
	now := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)

	in := validInput(now)
	in.Purpose = ""
	if err := ValidateCreate(in, now); err == nil {
		t.Fatalf("expected error for missing purpose")
	}

	in.Purpose = string(make([]byte, maxPurposeLen+1))
	if err := ValidateCreate(in, now); err == nil {
		t.Fatalf("expected error for oversized purpose")
	}
}
