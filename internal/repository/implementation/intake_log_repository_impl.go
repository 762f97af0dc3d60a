package implementation

import (
	"context"
	"errors"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/mapper"
	"greenwatch-be/internal/model"
	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IntakeLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeLogRepository(db *gorm.DB) contract.IntakeLogRepository {
	return &IntakeLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeLogRepositoryImpl) Upsert(ctx context.Context, log *entity.IntakeLog) error {
	m := r.mapper.LogToModel(log)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "intake_session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "answers", "fields", "summary", "completed_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*log = *r.mapper.LogToEntity(m)
	return nil
}

func (r *IntakeLogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeLog, error) {
	var m model.IntakeLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.LogToEntity(&m), nil
}

func (r *IntakeLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeLog, error) {
	var models []*model.IntakeLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.IntakeLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.LogToEntity(m)
	}
	return entities, nil
}
