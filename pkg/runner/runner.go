// Package runner defines the inference collaborator consulted on every
// free-chat turn.
package runner

import (
	"context"
	"errors"
)

// ErrUnknownSession is returned when the runner no longer knows a session,
// typically after a runner restart.
var ErrUnknownSession = errors.New("runner: unknown session")

type Session struct {
	SessionID     string         `json:"session_id"`
	Mode          string         `json:"mode"`
	TurnIndex     int            `json:"turn_index"`
	Slots         map[string]any `json:"slots"`
	MissingFields []string       `json:"missing_fields"`
}

// Reply is one runner turn. AssistantText is opaque to callers.
type Reply struct {
	TurnIndex     int            `json:"turn_index"`
	AssistantText string         `json:"assistant_text"`
	Mode          string         `json:"mode,omitempty"`
	Slots         map[string]any `json:"slots"`
	MissingFields []string       `json:"missing_fields"`
}

type Health struct {
	OK        bool   `json:"ok"`
	LLMLoaded bool   `json:"llm_loaded"`
	LLMModel  string `json:"llm_model"`
}

type Runner interface {
	StartSession(ctx context.Context) (*Session, error)
	SendMessage(ctx context.Context, sessionID, text string) (*Reply, error)
	Health(ctx context.Context) (*Health, error)
}
