package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

// RepositoryFactory hands out units of work over the intake tables.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
	// WithinTransaction runs fn inside one transaction. It commits when fn
	// returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(uow UnitOfWork) error) error
}

type gormRepositoryFactory struct {
	db *gorm.DB
}

// NewRepositoryFactory panics on a nil db. Callers that run without a
// database keep a nil RepositoryFactory instead.
func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	if db == nil {
		panic("unitofwork: nil database")
	}
	return &gormRepositoryFactory{db: db}
}

func (f *gormRepositoryFactory) NewUnitOfWork(_ context.Context) UnitOfWork {
	return NewUnitOfWork(f.db)
}

func (f *gormRepositoryFactory) WithinTransaction(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow := NewUnitOfWork(f.db)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}
