package unitofwork

import (
	"context"

	"funeral-docs-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TranscriptRepository() contract.TranscriptRepository
	ArrangementRepository() contract.ArrangementRepository
	DocumentRepository() contract.DocumentRepository
	FuneralTaskRepository() contract.FuneralTaskRepository
	UsageRepository() contract.UsageRepository
}
