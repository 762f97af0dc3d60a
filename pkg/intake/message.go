// Package intake holds the types shared by the dialogue packages.
package intake

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a session transcript. Transcripts are append-only.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

func UserMessage(text string) Message {
	return NewMessage(RoleUser, text)
}

func AssistantMessage(text string) Message {
	return NewMessage(RoleAssistant, text)
}
