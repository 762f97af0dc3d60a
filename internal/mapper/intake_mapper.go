package mapper

import (
	"time"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IntakeMapper struct{}

func NewIntakeMapper() *IntakeMapper {
	return &IntakeMapper{}
}

// Session Mappers

func (m *IntakeMapper) SessionToEntity(s *model.IntakeSession) *entity.IntakeSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.IntakeSession{
		Id:              s.Id,
		OwnerId:         s.OwnerId,
		DocumentName:    s.DocumentName,
		Mode:            s.Mode,
		Phase:           s.Phase,
		RunnerSessionId: s.RunnerSessionId,
		LogCompleted:    s.LogCompleted,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       s.DeletedAt.Valid,
	}
}

func (m *IntakeMapper) SessionToModel(s *entity.IntakeSession) *model.IntakeSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.IntakeSession{
		Id:              s.Id,
		OwnerId:         s.OwnerId,
		DocumentName:    s.DocumentName,
		Mode:            s.Mode,
		Phase:           s.Phase,
		RunnerSessionId: s.RunnerSessionId,
		LogCompleted:    s.LogCompleted,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

// Message Mappers

func (m *IntakeMapper) MessageToEntity(msg *model.IntakeMessage) *entity.IntakeMessage {
	if msg == nil {
		return nil
	}
	return &entity.IntakeMessage{
		Id:              msg.Id,
		IntakeSessionId: msg.IntakeSessionId,
		Role:            msg.Role,
		Text:            msg.Text,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *IntakeMapper) MessageToModel(msg *entity.IntakeMessage) *model.IntakeMessage {
	if msg == nil {
		return nil
	}
	return &model.IntakeMessage{
		Id:              msg.Id,
		IntakeSessionId: msg.IntakeSessionId,
		Role:            msg.Role,
		Text:            msg.Text,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *IntakeMapper) MessagesToEntities(msgs []*model.IntakeMessage) []*entity.IntakeMessage {
	out := make([]*entity.IntakeMessage, len(msgs))
	for i, msg := range msgs {
		out[i] = m.MessageToEntity(msg)
	}
	return out
}

// Log Mappers

func (m *IntakeMapper) LogToEntity(l *model.IntakeLog) *entity.IntakeLog {
	if l == nil {
		return nil
	}

	answers := make(map[string]string, len(l.Answers))
	for k, v := range l.Answers {
		if s, ok := v.(string); ok {
			answers[k] = s
		}
	}

	return &entity.IntakeLog{
		Id:              l.Id,
		IntakeSessionId: l.IntakeSessionId,
		OwnerId:         l.OwnerId,
		Label:           l.Label,
		Answers:         answers,
		Fields:          map[string]any(l.Fields),
		Summary:         l.Summary,
		CompletedAt:     l.CompletedAt,
		CreatedAt:       l.CreatedAt,
	}
}

func (m *IntakeMapper) LogToModel(l *entity.IntakeLog) *model.IntakeLog {
	if l == nil {
		return nil
	}

	answers := make(datatypes.JSONMap, len(l.Answers))
	for k, v := range l.Answers {
		answers[k] = v
	}

	return &model.IntakeLog{
		Id:              l.Id,
		IntakeSessionId: l.IntakeSessionId,
		OwnerId:         l.OwnerId,
		Label:           l.Label,
		Answers:         answers,
		Fields:          datatypes.JSONMap(l.Fields),
		Summary:         l.Summary,
		CompletedAt:     l.CompletedAt,
		CreatedAt:       l.CreatedAt,
	}
}
