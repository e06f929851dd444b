package maestro

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported session activity categories.
type ActivityEventType string

const (
	ActivityEventLoginSuccess    ActivityEventType = "session.login.success"
	ActivityEventLoginFailure    ActivityEventType = "session.login.failure"
	ActivityEventRegisterSuccess ActivityEventType = "session.register.success"
	ActivityEventLogout          ActivityEventType = "session.logout"
	ActivityEventInvalidated     ActivityEventType = "session.invalidated"
	ActivityEventProfileUpdated  ActivityEventType = "session.profile.updated"
)

// ActivityEvent captures telemetry-friendly information about a session
// lifecycle change.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     int64
	Username   string
	FromStatus SessionStatus
	ToStatus   SessionStatus
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes session activity events for telemetry purposes.
// Sinks run synchronously on the session's calling goroutine and must not
// block; slow consumers should buffer internally.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
