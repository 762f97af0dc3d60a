package implementation

import (
	"context"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/mapper"
	"greenwatch-be/internal/model"
	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntakeMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeMessageRepository(db *gorm.DB) contract.IntakeMessageRepository {
	return &IntakeMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeMessageRepositoryImpl) CreateBatch(ctx context.Context, messages []*entity.IntakeMessage) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.IntakeMessage, len(messages))
	for i, msg := range messages {
		models[i] = r.mapper.MessageToModel(msg)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *IntakeMessageRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("intake_session_id = ?", sessionId).Delete(&model.IntakeMessage{}).Error
}

func (r *IntakeMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeMessage, error) {
	var models []*model.IntakeMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *IntakeMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.IntakeMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
