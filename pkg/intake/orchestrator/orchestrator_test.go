package orchestrator

import (
	"testing"

	"greenwatch-be/pkg/intake/schema"
	"greenwatch-be/pkg/intake/slot"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestChatModeAcknowledges(t *testing.T) {
	engine := slot.NewEngine(schema.EngineeringWatchLog())
	o := New(engine)

	r := o.SubmitText("MV Horizon")
	if r.AssistantText != ChatAcknowledgment || r.ShouldAskLogQuestion || r.LogProgress != nil || r.Clarified {
		t.Errorf("SubmitText() = %+v", r)
	}
	if len(engine.Log()) != 0 {
		t.Error("chat mode must not touch the log")
	}
	if o.Mode() != ModeChat || o.TurnCount() != 0 {
		t.Errorf("Mode() = %s, TurnCount() = %d", o.Mode(), o.TurnCount())
	}
	if _, ok := o.NextLogQuestion(); ok {
		t.Error("no log question outside logging mode")
	}
}

func TestLoggingPacesQuestionsOnEvenTurns(t *testing.T) {
	o := New(slot.NewEngine(schema.EngineeringWatchLog()))
	o.EnableLogContext()

	tests := []struct {
		text    string
		wantAsk bool
	}{
		{"MV Horizon", false},
		{"08:00-12:00", true},
		{"Chief Engineer Smith", false},
		{"RPM 1200", true},
	}

	for i, tt := range tests {
		r := o.SubmitText(tt.text)
		if r.Clarified {
			t.Fatalf("turn %d unexpectedly clarified: %q", i+1, r.AssistantText)
		}
		if r.AssistantText != LogAcknowledgment {
			t.Errorf("turn %d text = %q", i+1, r.AssistantText)
		}
		if r.ShouldAskLogQuestion != tt.wantAsk {
			t.Errorf("turn %d ask = %v, want %v", i+1, r.ShouldAskLogQuestion, tt.wantAsk)
		}
		want := float64(i+1) / 8
		if r.LogProgress == nil || *r.LogProgress != want {
			t.Errorf("turn %d progress = %v, want %v", i+1, r.LogProgress, want)
		}
	}

	if q, ok := o.NextLogQuestion(); !ok || q != "What was the main engine load percentage?" {
		t.Errorf("NextLogQuestion() = %q, %v", q, ok)
	}
}

func TestClarificationWins(t *testing.T) {
	engine := slot.NewEngine(schema.EngineeringWatchLog())
	engine.PreFill(map[string]any{
		schema.KeyVesselName:     "MV Horizon",
		schema.KeyWatchPeriod:    "08:00-12:00",
		schema.KeyOfficerOnWatch: "Smith",
	})
	o := New(engine)
	o.EnableLogContext()

	// Turn 1 is odd, a clarification still asks.
	r := o.SubmitText("RPM was 5000")
	if !r.Clarified || !r.ShouldAskLogQuestion {
		t.Fatalf("SubmitText() = %+v", r)
	}
	if r.AssistantText != "What was the main engine RPM?" {
		t.Errorf("AssistantText = %q", r.AssistantText)
	}
	if r.LogProgress == nil || *r.LogProgress != 3.0/8 {
		t.Errorf("LogProgress = %v", r.LogProgress)
	}
}

func TestCompleteLogStopsAsking(t *testing.T) {
	engine := slot.NewEngine(&schema.Schema{Fields: []schema.Field{
		{Key: "a", Required: true, Prompt: "A?", Kind: schema.KindText},
	}})
	o := New(engine)
	o.EnableLogContext()

	o.SubmitText("filled")
	r := o.SubmitText("just chatting now")
	if r.ShouldAskLogQuestion {
		t.Error("complete log must not ask on even turns")
	}
	if r.LogProgress == nil || *r.LogProgress != 1 {
		t.Errorf("LogProgress = %v", r.LogProgress)
	}
}

func TestToggleResetsTurnCount(t *testing.T) {
	o := New(slot.NewEngine(schema.EngineeringWatchLog()))
	o.EnableLogContext()
	o.SubmitText("MV Horizon")
	if o.Mode() != ModeLogging || o.TurnCount() != 1 {
		t.Fatalf("Mode() = %s, TurnCount() = %d", o.Mode(), o.TurnCount())
	}

	o.DisableLogContext()
	if o.Mode() != ModeChat || o.TurnCount() != 0 {
		t.Errorf("after disable: Mode() = %s, TurnCount() = %d", o.Mode(), o.TurnCount())
	}

	o.EnableLogContext()
	if r := o.SubmitText("08:00-12:00"); r.ShouldAskLogQuestion {
		t.Error("first turn after re-enable is odd and must not ask")
	}
}

func TestSnapshotRestore(t *testing.T) {
	engine := slot.NewEngine(schema.EngineeringWatchLog())
	o := New(engine)
	o.EnableLogContext()
	o.SubmitText("MV Horizon")

	restored := New(engine)
	restored.Restore(o.Snapshot())

	if restored.Mode() != ModeLogging || restored.TurnCount() != 1 {
		t.Errorf("restored = %+v", restored.Snapshot())
	}
	if r := restored.SubmitText("08:00-12:00"); !r.ShouldAskLogQuestion {
		t.Error("second turn after restore should ask")
	}
}
