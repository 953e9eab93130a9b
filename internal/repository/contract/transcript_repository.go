package contract

import (
	"context"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entity.Transcript) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateStatus touches only the lifecycle columns; content is immutable.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TranscriptStatus, message string) error
}
