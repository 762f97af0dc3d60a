package mapper

import (
	"testing"
	"time"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSessionMapping(t *testing.T) {
	m := NewIntakeMapper()
	now := time.Now().UTC()

	deleted := &model.IntakeSession{
		Id:        uuid.New(),
		Phase:     "chat",
		DeletedAt: gorm.DeletedAt{Time: now, Valid: true},
	}
	e := m.SessionToEntity(deleted)
	assert.True(t, e.IsDeleted)
	assert.Equal(t, now, *e.DeletedAt)
	assert.Nil(t, e.UpdatedAt)

	back := m.SessionToModel(e)
	assert.True(t, back.DeletedAt.Valid)
	assert.Equal(t, deleted.Id, back.Id)

	assert.Nil(t, m.SessionToEntity(nil))
	assert.Nil(t, m.SessionToModel(nil))
}

func TestLogMapping(t *testing.T) {
	m := NewIntakeMapper()
	in := &entity.IntakeLog{
		Id:      uuid.New(),
		Answers: map[string]string{"vessel_name": "MV Aurora", "alarms": "none"},
		Fields:  map[string]any{"mainEngineRPM": 1200.0},
		Summary: "### Engineering Watch Log Summary",
	}

	out := m.LogToEntity(m.LogToModel(in))
	assert.Equal(t, in.Answers, out.Answers)
	assert.Equal(t, in.Fields, out.Fields)
	assert.Equal(t, in.Summary, out.Summary)
}
