package contract

import (
	"context"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ArrangementRepository interface {
	Create(ctx context.Context, arrangement *entity.Arrangement) error
	Update(ctx context.Context, arrangement *entity.Arrangement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Arrangement, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Arrangement, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountForUser counts arrangements whose transcript belongs to the user.
	CountForUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) (int64, error)
}
