package booking

import "testing"

func TestCanTransition_ApprovalPath(t *testing.T) {
	steps := []struct {
		from, to Status
	}{
		{StatusPending, StatusApproved1},
		{StatusApproved1, StatusApproved},
	}
	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s to be allowed", s.from, s.to)
		}
	}
}

func TestCanTransition_RejectedFromAnyState(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusApproved1, StatusApproved} {
		if !CanTransition(from, StatusRejected) {
			t.Fatalf("expected %s -> rejected to be allowed", from)
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, to := range []Status{StatusPending, StatusApproved1, StatusApproved, StatusRejected} {
		if CanTransition(StatusRejected, to) {
			t.Fatalf("rejected must be terminal, allowed -> %s", to)
		}
	}
	if CanTransition(StatusApproved, StatusApproved1) {
		t.Fatalf("approved must not move backwards")
	}
	if CanTransition(StatusPending, StatusApproved) {
		t.Fatalf("pending must not skip level 1")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("approved_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("cancelled"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
