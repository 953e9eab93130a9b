package implementation

import (
	"context"
	"errors"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/mapper"
	"funeral-docs-be/internal/model"
	"funeral-docs-be/internal/repository/contract"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArrangementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArrangementMapper
}

func NewArrangementRepository(db *gorm.DB) contract.ArrangementRepository {
	return &ArrangementRepositoryImpl{
		db:     db,
		mapper: mapper.NewArrangementMapper(),
	}
}

func (r *ArrangementRepositoryImpl) Create(ctx context.Context, arrangement *entity.Arrangement) error {
	m, err := r.mapper.ToModel(arrangement)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	arrangement.Id = m.Id
	arrangement.CreatedAt = m.CreatedAt
	arrangement.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ArrangementRepositoryImpl) Update(ctx context.Context, arrangement *entity.Arrangement) error {
	m, err := r.mapper.ToModel(arrangement)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	arrangement.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ArrangementRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Arrangement{}).Error
}

func (r *ArrangementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Arrangement, error) {
	var m model.Arrangement
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ArrangementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Arrangement, error) {
	var models []*model.Arrangement
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Arrangement, 0, len(models))
	for _, m := range models {
		a, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *ArrangementRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Arrangement{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ArrangementRepositoryImpl) CountForUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Arrangement{}).
		Where("transcript_id IN (?)", r.db.Model(&model.Transcript{}).Select("id").Where("user_id = ?", userId))
	if err := applySpecifications(query, specs...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
