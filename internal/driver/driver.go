package driver

import "fmt"

type Status string

const (
	StatusAvailable Status = "available"
	StatusOnDuty    Status = "on_duty"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusOnDuty:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown driver status: %s", s)
	}
}
