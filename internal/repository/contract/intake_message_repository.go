package contract

import (
	"context"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IntakeMessageRepository interface {
	CreateBatch(ctx context.Context, messages []*entity.IntakeMessage) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
