package contract

import (
	"context"

	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/repository/specification"
)

type IntakeLogRepository interface {
	// Upsert stores the log for its session, replacing an earlier one.
	Upsert(ctx context.Context, log *entity.IntakeLog) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeLog, error)
}
