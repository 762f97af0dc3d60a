package events

import (
	"testing"
	"time"
)

func TestNewAndFromPayload(t *testing.T) {
	evt := New(TurnCompleted, "s-1", map[string]interface{}{"phase": "chat"})
	if evt.EventType() != TurnCompleted {
		t.Fatalf("type = %s", evt.EventType())
	}
	if evt.Payload()["session_id"] != "s-1" || evt.Payload()["phase"] != "chat" {
		t.Fatalf("payload = %v", evt.Payload())
	}

	back := FromPayload("greenwatch.unknown", evt.Payload())
	if back.Type != TurnCompleted {
		t.Errorf("type = %s, want %s", back.Type, TurnCompleted)
	}
	if back.SessionID != "s-1" {
		t.Errorf("session id = %q", back.SessionID)
	}
	if !back.OccurredAt.Equal(evt.OccurredAt) {
		t.Errorf("occurred_at = %v, want %v", back.OccurredAt, evt.OccurredAt)
	}

	fallback := FromPayload("greenwatch.X", map[string]interface{}{"occurred_at": "yesterday"})
	if fallback.Type != "greenwatch.X" {
		t.Errorf("fallback type = %s", fallback.Type)
	}
	if time.Since(fallback.OccurredAt) > time.Minute {
		t.Errorf("fallback time = %v", fallback.OccurredAt)
	}
}
