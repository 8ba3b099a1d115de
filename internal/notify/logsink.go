package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSink records notifications on the process log. It stands in for a real
// delivery channel (mail, websocket push) wired at the router.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Notify(_ context.Context, userID, message string, severity Severity) {
	s.Log.Info("notification",
		zap.String("user_id", userID),
		zap.String("severity", string(severity)),
		zap.String("message", message),
	)
}
