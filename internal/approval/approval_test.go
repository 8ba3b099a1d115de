package approval

import "testing"

func TestStatusResolved(t *testing.T) {
	if StatusPending.Resolved() {
		t.Fatalf("pending must not be resolved")
	}
	if !StatusApproved.Resolved() {
		t.Fatalf("approved must be resolved")
	}
	if !StatusRejected.Resolved() {
		t.Fatalf("rejected must be resolved")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("approved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("withdrawn"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
