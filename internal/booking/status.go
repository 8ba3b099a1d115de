package booking

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"    // awaiting level-1 approval
	StatusApproved1 Status = "approved_1" // level-1 approved, awaiting level-2
	StatusApproved  Status = "approved"   // fully approved
	StatusRejected  Status = "rejected"   // rejected or cancelled; terminal
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved1, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusApproved1: true, StatusRejected: true},
	StatusApproved1: {StatusApproved: true, StatusRejected: true},
	StatusApproved:  {StatusRejected: true}, // cancellation only
	StatusRejected:  {},
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}
