package events

import (
	"context"
	"time"
)

const (
	SessionStarted  = "SESSION_STARTED"
	MessageRecorded = "MESSAGE_RECORDED"
	TurnCompleted   = "TURN_COMPLETED"
	LogCompleted    = "LOG_COMPLETED"
	RunnerFailed    = "RUNNER_FAILED"
)

// Event is anything published on the audit bus.
type Event interface {
	// EventType is one of the upper-case codes above.
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// SessionEvent is an audit record about one intake session.
type SessionEvent struct {
	Type       string
	SessionID  string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e SessionEvent) EventType() string { return e.Type }
func (e SessionEvent) Payload() map[string]interface{} { return e.Data }
func (e SessionEvent) Timestamp() time.Time { return e.OccurredAt }

// New stamps data with the session id and occurrence time so consumers do
// not depend on the subject alone.
func New(eventType, sessionID string, data map[string]interface{}) SessionEvent {
	now := time.Now().UTC()
	if data == nil {
		data = make(map[string]interface{})
	}
	data["event_type"] = eventType
	data["session_id"] = sessionID
	data["occurred_at"] = now.Format(time.RFC3339Nano)
	return SessionEvent{Type: eventType, SessionID: sessionID, Data: data, OccurredAt: now}
}

// FromPayload rebuilds an event read off the bus. Missing or malformed
// fields fall back to fallbackType and the receive time.
func FromPayload(fallbackType string, payload map[string]interface{}) SessionEvent {
	evt := SessionEvent{Type: fallbackType, Data: payload, OccurredAt: time.Now().UTC()}
	if t, ok := payload["event_type"].(string); ok && t != "" {
		evt.Type = t
	}
	if id, ok := payload["session_id"].(string); ok {
		evt.SessionID = id
	}
	if s, ok := payload["occurred_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			evt.OccurredAt = ts
		}
	}
	return evt
}
