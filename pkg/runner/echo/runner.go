// Package echo is an offline runner with deterministic replies, used in
// development and tests.
package echo

import (
	"context"
	"fmt"
	"sync"

	"greenwatch-be/pkg/runner"

	"github.com/google/uuid"
)

const (
	Model = "echo"
	Reply = "Understood."
)

type Runner struct {
	mu    sync.Mutex
	turns map[string]int
}

var _ runner.Runner = (*Runner)(nil)

func New() *Runner {
	return &Runner{turns: make(map[string]int)}
}

func (r *Runner) StartSession(context.Context) (*runner.Session, error) {
	id := uuid.NewString()
	r.mu.Lock()
	r.turns[id] = 0
	r.mu.Unlock()
	return &runner.Session{SessionID: id, Mode: "active", Slots: map[string]any{}}, nil
}

// SendMessage acknowledges text. Unknown ids are adopted so a restarted
// process keeps serving existing sessions.
func (r *Runner) SendMessage(_ context.Context, sessionID, _ string) (*runner.Reply, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty id", runner.ErrUnknownSession)
	}
	r.mu.Lock()
	r.turns[sessionID]++
	turn := r.turns[sessionID]
	r.mu.Unlock()

	return &runner.Reply{TurnIndex: turn, AssistantText: Reply, Mode: "active", Slots: map[string]any{}}, nil
}

func (r *Runner) Health(context.Context) (*runner.Health, error) {
	return &runner.Health{OK: true, LLMLoaded: false, LLMModel: Model}, nil
}
