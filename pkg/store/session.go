package store

import (
	"encoding/json"
	"time"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/intake/orchestrator"
	"greenwatch-be/pkg/intake/sequence"
	"greenwatch-be/pkg/intake/slot"
)

// Phase is where a session sits in the intake flow.
type Phase string

const (
	// PhaseUpload waits for a document before structured logging starts.
	PhaseUpload    Phase = "upload"
	PhaseQuestions Phase = "questions"
	PhaseChat      Phase = "chat"
)

// Session is the full per-session state kept by the session stores.
type Session struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"owner_id"`
	DocumentName string            `json:"document_name,omitempty"`
	Mode         orchestrator.Mode `json:"mode"`
	Phase        Phase             `json:"phase"`

	// RunnerSessionID is the id handed out by the inference runner, if any.
	RunnerSessionID string `json:"runner_session_id,omitempty"`

	Engine       slot.Snapshot         `json:"engine"`
	Sequencer    sequence.Snapshot     `json:"sequencer"`
	Orchestrator orchestrator.Snapshot `json:"orchestrator"`

	Messages []intake.Message `json:"messages"`

	// LogCompleted is set once the completed log has been published.
	LogCompleted bool `json:"log_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id, ownerID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		Mode:      orchestrator.ModeChat,
		Phase:     PhaseUpload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds messages to the transcript and bumps UpdatedAt.
func (s *Session) Append(msgs ...intake.Message) {
	s.Messages = append(s.Messages, msgs...)
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) OwnedBy(ownerID string) bool {
	return s.OwnerID == "" || s.OwnerID == ownerID
}

// Clone returns a deep copy through the JSON form used by the stores.
func (s *Session) Clone() (*Session, error) {
	data, err := s.Marshal()
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

func (s *Session) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func Unmarshal(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
