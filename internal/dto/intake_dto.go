package dto

import (
	"time"

	"greenwatch-be/pkg/intake/schema"
)

type CreateSessionRequest struct {
	DocumentName string `json:"document_name" validate:"omitempty,max=255"`
}

type AttachDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required,max=255"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type MessageResponse struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionResponse struct {
	Id            string            `json:"id"`
	DocumentName  string            `json:"document_name,omitempty"`
	Mode          string            `json:"mode"`
	Phase         string            `json:"phase"`
	Progress      float64           `json:"progress"`
	LogProgress   float64           `json:"log_progress"`
	Done          bool              `json:"done"`
	CurrentPrompt string            `json:"current_prompt,omitempty"`
	Log           map[string]any    `json:"log"`
	Answers       map[string]string `json:"answers"`
	Summary       string            `json:"summary,omitempty"`
	MessageCount  int               `json:"message_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type CreateSessionResponse struct {
	Session  *SessionResponse  `json:"session"`
	Messages []MessageResponse `json:"messages"`
}

// TurnResponse carries the messages produced by one user turn.
type TurnResponse struct {
	SessionId   string            `json:"session_id"`
	Messages    []MessageResponse `json:"messages"`
	Mode        string            `json:"mode"`
	Phase       string            `json:"phase"`
	Progress    float64           `json:"progress"`
	LogProgress *float64          `json:"log_progress,omitempty"`
	Done        bool              `json:"done"`
}

type FieldResponse struct {
	Key      string   `json:"key"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Prompt   string   `json:"prompt"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

type SchemaResponse struct {
	Name      string             `json:"name"`
	Fields    []FieldResponse    `json:"fields"`
	Questions []QuestionResponse `json:"questions"`
}

type QuestionResponse struct {
	Id       string `json:"id"`
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
	Field    string `json:"field,omitempty"`
}

type HealthResponse struct {
	Ok        bool   `json:"ok"`
	LLMLoaded bool   `json:"llm_loaded"`
	LLMModel  string `json:"llm_model"`
}

type AuditEventResponse struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Type      string                 `json:"type"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// LogResponse is a stored completed log.
type LogResponse struct {
	Id          string            `json:"id"`
	SessionId   string            `json:"session_id"`
	Label       string            `json:"label"`
	Answers     map[string]string `json:"answers"`
	Fields      map[string]any    `json:"fields"`
	Summary     string            `json:"summary"`
	CompletedAt time.Time         `json:"completed_at"`
}

// LogCompletedMessage is published on the completion topic once the guided
// question flow of a session finishes.
type LogCompletedMessage struct {
	SessionId   string            `json:"session_id"`
	OwnerId     string            `json:"owner_id"`
	Label       string            `json:"label"`
	Answers     map[string]string `json:"answers"`
	Fields      map[string]any    `json:"fields"`
	Summary     string            `json:"summary"`
	CompletedAt time.Time         `json:"completed_at"`
}

func FieldsFromSchema(s *schema.Schema) []FieldResponse {
	out := make([]FieldResponse, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, FieldResponse{
			Key:      f.Key,
			Kind:     string(f.Kind),
			Required: f.Required,
			Prompt:   f.Prompt,
			Min:      f.Min,
			Max:      f.Max,
		})
	}
	return out
}
