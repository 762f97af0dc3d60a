package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntakeSession struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId         string         `gorm:"type:text;index"`
	DocumentName    string         `gorm:"type:text"`
	Mode            string         `gorm:"type:varchar(20);not null"`
	Phase           string         `gorm:"type:varchar(20);not null"`
	RunnerSessionId string         `gorm:"type:text"`
	LogCompleted    bool           `gorm:"not null;default:false"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (IntakeSession) TableName() string {
	return "intake_sessions"
}
