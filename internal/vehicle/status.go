package vehicle

import "fmt"

type Status string

const (
	StatusAvailable Status = "available"
	StatusOnDuty    Status = "on_duty"
	StatusService   Status = "service"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusOnDuty, StatusService:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown vehicle status: %s", s)
	}
}
