package entity

import (
	"time"

	"github.com/google/uuid"
)

type IntakeSession struct {
	Id              uuid.UUID
	OwnerId         string
	DocumentName    string
	Mode            string
	Phase           string
	RunnerSessionId string
	LogCompleted    bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}

type IntakeMessage struct {
	Id              uuid.UUID
	IntakeSessionId uuid.UUID
	Role            string
	Text            string
	CreatedAt       time.Time
}

type IntakeLog struct {
	Id              uuid.UUID
	IntakeSessionId uuid.UUID
	OwnerId         string
	Label           string
	Answers         map[string]string
	Fields          map[string]any
	Summary         string
	CompletedAt     time.Time
	CreatedAt       time.Time
}
