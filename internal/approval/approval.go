package approval

import "fmt"

// Level is the rank in the two-step sign-off chain. Level 2 is gated by
// level 1.
const (
	Level1 = 1
	Level2 = 2
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown approval status: %s", s)
	}
}

// Resolved reports whether the approval has reached a terminal state.
// Resolved approvals are immutable: re-approving or re-rejecting is a
// conflict, never a silent no-op.
func (s Status) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}
