package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IntakeLog is a completed guided log: the answers keyed by question id,
// the structured fields filled by the slot engine and the rendered summary.
type IntakeLog struct {
	Id              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IntakeSessionId uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	OwnerId         string            `gorm:"type:text;index"`
	Label           string            `gorm:"type:text"`
	Answers         datatypes.JSONMap `gorm:"type:jsonb"`
	Fields          datatypes.JSONMap `gorm:"type:jsonb"`
	Summary         string            `gorm:"type:text"`
	CompletedAt     time.Time         `gorm:"not null"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
}

func (IntakeLog) TableName() string {
	return "intake_logs"
}
