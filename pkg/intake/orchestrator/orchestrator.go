// Package orchestrator switches a session between free chat and structured
// logging, and paces how often a log question is interleaved with replies.
package orchestrator

import (
	"greenwatch-be/pkg/intake/slot"
)

type Mode string

const (
	ModeChat    Mode = "chat"
	ModeLogging Mode = "logging"
)

const (
	ChatAcknowledgment = "I'm here to listen. Tell me what's on your mind."
	LogAcknowledgment  = "Thanks for sharing that."
)

// Reply is the outcome of one user utterance.
type Reply struct {
	AssistantText        string
	ShouldAskLogQuestion bool
	// LogProgress is nil outside logging mode.
	LogProgress *float64
	// Clarified is set when AssistantText is an engine clarification.
	Clarified bool
}

// Orchestrator is the per-session mode dispatcher. It is not safe for
// concurrent use; callers serialise turns of one session.
type Orchestrator struct {
	engine        *slot.Engine
	hasLogContext bool
	turnCount     int
}

func New(engine *slot.Engine) *Orchestrator {
	return &Orchestrator{engine: engine}
}

func (o *Orchestrator) EnableLogContext() {
	o.hasLogContext = true
	o.turnCount = 0
}

func (o *Orchestrator) DisableLogContext() {
	o.hasLogContext = false
	o.turnCount = 0
}

func (o *Orchestrator) HasLogContext() bool {
	return o.hasLogContext
}

func (o *Orchestrator) TurnCount() int {
	return o.turnCount
}

func (o *Orchestrator) Mode() Mode {
	if o.hasLogContext {
		return ModeLogging
	}
	return ModeChat
}

func (o *Orchestrator) Engine() *slot.Engine {
	return o.engine
}

// SubmitText handles one utterance. In logging mode a clarification from
// the engine always wins; otherwise a log question is due on every second
// turn while the log is incomplete.
func (o *Orchestrator) SubmitText(text string) Reply {
	if !o.hasLogContext {
		return Reply{AssistantText: ChatAcknowledgment}
	}

	o.turnCount++
	res := o.engine.ApplyText(text)
	progress := o.engine.Progress()

	if res.NeedsClarification() {
		return Reply{
			AssistantText:        res.Clarification,
			ShouldAskLogQuestion: true,
			LogProgress:          &progress,
			Clarified:            true,
		}
	}

	return Reply{
		AssistantText:        LogAcknowledgment,
		ShouldAskLogQuestion: o.turnCount%2 == 0 && !o.engine.IsComplete(),
		LogProgress:          &progress,
	}
}

// NextLogQuestion returns the prompt to interleave when a question is due.
func (o *Orchestrator) NextLogQuestion() (string, bool) {
	if !o.hasLogContext {
		return "", false
	}
	return o.engine.NextQuestion()
}

type Snapshot struct {
	HasLogContext bool `json:"has_log_context"`
	TurnCount     int  `json:"turn_count"`
}

func (o *Orchestrator) Snapshot() Snapshot {
	return Snapshot{HasLogContext: o.hasLogContext, TurnCount: o.turnCount}
}

func (o *Orchestrator) Restore(s Snapshot) {
	o.hasLogContext = s.HasLogContext
	o.turnCount = s.TurnCount
	if o.turnCount < 0 {
		o.turnCount = 0
	}
}
