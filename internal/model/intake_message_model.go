package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntakeMessage struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IntakeSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role            string         `gorm:"type:varchar(20);not null"`
	Text            string         `gorm:"type:text;not null"`
	CreatedAt       time.Time      `gorm:"index"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (IntakeMessage) TableName() string {
	return "intake_messages"
}
