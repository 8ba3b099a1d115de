package workflow

import (
	"testing"

	"fleetbook/internal/approval"
	"fleetbook/internal/booking"
)

func pair(l1, l2 approval.Status) []approval.Approval {
	return []approval.Approval{
		{Level: approval.Level1, Status: l1},
		{Level: approval.Level2, Status: l2},
	}
}

func TestProgress_Pending(t *testing.T) {
	if got := Progress(booking.StatusPending, pair(approval.StatusPending, approval.StatusPending)); got != ProgressPending {
		t.Fatalf("expected pending, got %s", got)
	}
}

func TestProgress_Level1Approved(t *testing.T) {
	if got := Progress(booking.StatusApproved1, pair(approval.StatusApproved, approval.StatusPending)); got != ProgressApprovedLevel1 {
		t.Fatalf("expected approved_level1, got %s", got)
	}
}

func TestProgress_FullyApproved(t *testing.T) {
	if got := Progress(booking.StatusApproved, pair(approval.StatusApproved, approval.StatusApproved)); got != ProgressFullyApproved {
		t.Fatalf("expected fully_approved, got %s", got)
	}
}

func TestProgress_Rejected(t *testing.T) {
	if got := Progress(booking.StatusRejected, pair(approval.StatusPending, approval.StatusPending)); got != ProgressRejected {
		t.Fatalf("cancelled booking should project rejected, got %s", got)
	}
	if got := Progress(booking.StatusPending, pair(approval.StatusRejected, approval.StatusPending)); got != ProgressRejected {
		t.Fatalf("level-1 rejection should project rejected, got %s", got)
	}
	if got := Progress(booking.StatusApproved1, pair(approval.StatusApproved, approval.StatusRejected)); got != ProgressRejected {
		t.Fatalf("level-2 rejection should project rejected, got %s", got)
	}
}

func TestProgress_MissingLevel2IsDefensive(t *testing.T) {
	approvals := []approval.Approval{{Level: approval.Level1, Status: approval.StatusApproved}}
	if got := Progress(booking.StatusApproved1, approvals); got != ProgressFullyApproved {
		t.Fatalf("level-1 approval with no level-2 record should project fully_approved, got %s", got)
	}
}
