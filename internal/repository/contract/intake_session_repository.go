package contract

import (
	"context"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IntakeSessionRepository interface {
	Create(ctx context.Context, session *entity.IntakeSession) error
	Update(ctx context.Context, session *entity.IntakeSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
