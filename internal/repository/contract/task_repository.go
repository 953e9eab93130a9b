package contract

import (
	"context"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FuneralTaskRepository interface {
	Create(ctx context.Context, task *entity.FuneralTask) error
	Update(ctx context.Context, task *entity.FuneralTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FuneralTask, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FuneralTask, error)
}
