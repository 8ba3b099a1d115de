package notify

import "context"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Sink receives user-facing notifications emitted on workflow outcomes.
// Delivery is out of scope here; implementations must never fail the
// business operation that triggered the notification.
type Sink interface {
	Notify(ctx context.Context, userID, message string, severity Severity)
}
