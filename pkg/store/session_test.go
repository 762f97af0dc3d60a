package store

import (
	"context"
	"sync"
	"testing"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/intake/orchestrator"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("s1", "owner")
	if s.Phase != PhaseUpload || s.Mode != orchestrator.ModeChat {
		t.Errorf("phase=%s mode=%s", s.Phase, s.Mode)
	}
	if s.CreatedAt.IsZero() || !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Errorf("timestamps = %v / %v", s.CreatedAt, s.UpdatedAt)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSession("s1", "owner")
	s.Append(intake.UserMessage("hello"))
	s.Engine.Log = map[string]any{"vesselName": "MV Horizon"}

	c, err := s.Clone()
	if err != nil {
		t.Fatal(err)
	}
	c.Messages[0].Text = "changed"
	c.Engine.Log["vesselName"] = "changed"

	if s.Messages[0].Text != "hello" || s.Engine.Log["vesselName"] != "MV Horizon" {
		t.Error("clone shares state with the original")
	}
}

func TestOwnedBy(t *testing.T) {
	tests := []struct {
		owner  string
		caller string
		want   bool
	}{
		{"alice", "alice", true},
		{"alice", "bob", false},
		{"", "bob", true},
	}
	for _, tt := range tests {
		s := NewSession("s", tt.owner)
		if got := s.OwnedBy(tt.caller); got != tt.want {
			t.Errorf("OwnedBy(%q) on %q = %v, want %v", tt.caller, tt.owner, got, tt.want)
		}
	}
}

func TestLockerSerialisesSameSession(t *testing.T) {
	l := NewLocker()
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "s1")
			if err != nil {
				t.Error(err)
				return
			}
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestLockerIndependentSessions(t *testing.T) {
	l := NewLocker()
	unlockA, err := l.Lock(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	defer unlockA()

	done := make(chan struct{})
	go func() {
		if unlock, err := l.Lock(context.Background(), "b"); err == nil {
			unlock()
		}
		close(done)
	}()
	<-done

	l.Forget("b")
}

func TestLockerRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLocker().Lock(ctx, "s1"); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
