// Package llmrunner backs the runner contract with a chat-completion model,
// keeping a bounded per-session history in memory.
package llmrunner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"greenwatch-be/pkg/llm"
	"greenwatch-be/pkg/runner"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultSystemPrompt = "You are a calm, supportive listener for marine engineers at the end of a watch. " +
		"Reply in one or two short sentences. Do not ask for operational log values; another part of the system collects them."
	defaultHistory     = 20
	defaultReplyTokens = 200
	defaultTemperature = 0.7
	modeActive         = "active"
)

type conversation struct {
	mu      sync.Mutex
	turns   int
	history []llm.Message
}

type Runner struct {
	provider     llm.LLMProvider
	systemPrompt string
	maxHistory   int
	replyTokens  int
	temperature  float64
	sessions     *cache.Cache
}

var _ runner.Runner = (*Runner)(nil)

type Option func(*Runner)

func WithSystemPrompt(prompt string) Option {
	return func(r *Runner) {
		r.systemPrompt = prompt
	}
}

// WithMaxHistory bounds the number of turns replayed to the model.
func WithMaxHistory(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxHistory = n
		}
	}
}

// WithReplyTokens caps the length of each model reply.
func WithReplyTokens(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.replyTokens = n
		}
	}
}

func WithTemperature(t float64) Option {
	return func(r *Runner) {
		r.temperature = t
	}
}

func New(provider llm.LLMProvider, ttl time.Duration, opts ...Option) *Runner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	r := &Runner{
		provider:     provider,
		systemPrompt: DefaultSystemPrompt,
		maxHistory:   defaultHistory,
		replyTokens:  defaultReplyTokens,
		temperature:  defaultTemperature,
		sessions:     cache.New(ttl, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) StartSession(_ context.Context) (*runner.Session, error) {
	id := uuid.NewString()
	r.sessions.Set(id, &conversation{}, cache.DefaultExpiration)
	return &runner.Session{
		SessionID: id,
		Mode:      modeActive,
		Slots:     map[string]any{},
	}, nil
}

func (r *Runner) SendMessage(ctx context.Context, sessionID, text string) (*runner.Reply, error) {
	v, ok := r.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", runner.ErrUnknownSession, sessionID)
	}
	conv := v.(*conversation)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	history := make([]llm.Message, 0, len(conv.history)+2)
	if r.systemPrompt != "" {
		history = append(history, llm.Message{Role: "system", Content: r.systemPrompt})
	}
	history = append(history, conv.history...)
	history = append(history, llm.Message{Role: "user", Content: text})

	answer, err := r.provider.Chat(ctx, history,
		llm.WithMaxTokens(r.replyTokens),
		llm.WithTemperature(r.temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	// History only grows after a successful call so a failed turn can be retried.
	conv.history = append(conv.history,
		llm.Message{Role: "user", Content: text},
		llm.Message{Role: "assistant", Content: answer},
	)
	if limit := r.maxHistory * 2; len(conv.history) > limit {
		conv.history = conv.history[len(conv.history)-limit:]
	}
	conv.turns++
	r.sessions.Set(sessionID, conv, cache.DefaultExpiration)

	return &runner.Reply{
		TurnIndex:     conv.turns,
		AssistantText: answer,
		Mode:          modeActive,
		Slots:         map[string]any{},
	}, nil
}

// Health reports OK when the provider answers and fails otherwise. Providers
// that cannot report model status are assumed loaded.
func (r *Runner) Health(ctx context.Context) (*runner.Health, error) {
	checker, ok := r.provider.(llm.HealthChecker)
	if !ok {
		return &runner.Health{OK: true, LLMLoaded: true}, nil
	}
	status, err := checker.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider health: %w", err)
	}
	return &runner.Health{OK: true, LLMLoaded: status.Loaded, LLMModel: status.Model}, nil
}
