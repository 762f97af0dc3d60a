package unitofwork

import (
	"context"

	"greenwatch-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	IntakeSessionRepository() contract.IntakeSessionRepository
	IntakeMessageRepository() contract.IntakeMessageRepository
	IntakeLogRepository() contract.IntakeLogRepository
}
