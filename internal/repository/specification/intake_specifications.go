package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByIntakeSessionID struct {
	IntakeSessionID uuid.UUID
}

func (s ByIntakeSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("intake_session_id = ?", s.IntakeSessionID)
}

type ByOwnerID struct {
	OwnerID string
}

func (s ByOwnerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}
