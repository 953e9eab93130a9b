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

type FuneralTaskRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewFuneralTaskRepository(db *gorm.DB) contract.FuneralTaskRepository {
	return &FuneralTaskRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *FuneralTaskRepositoryImpl) Create(ctx context.Context, task *entity.FuneralTask) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *FuneralTaskRepositoryImpl) Update(ctx context.Context, task *entity.FuneralTask) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *FuneralTaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FuneralTask{}).Error
}

func (r *FuneralTaskRepositoryImpl) DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if len(specs) == 0 {
		return 0, errors.New("refusing to delete tasks without a filter")
	}
	res := applySpecifications(r.db.WithContext(ctx), specs...).Delete(&model.FuneralTask{})
	return res.RowsAffected, res.Error
}

func (r *FuneralTaskRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FuneralTask, error) {
	var m model.FuneralTask
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FuneralTaskRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FuneralTask, error) {
	var models []*model.FuneralTask
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
