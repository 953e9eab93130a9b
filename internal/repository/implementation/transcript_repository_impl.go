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

type TranscriptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TranscriptMapper
}

func NewTranscriptRepository(db *gorm.DB) contract.TranscriptRepository {
	return &TranscriptRepositoryImpl{
		db:     db,
		mapper: mapper.NewTranscriptMapper(),
	}
}

func (r *TranscriptRepositoryImpl) Create(ctx context.Context, transcript *entity.Transcript) error {
	m := r.mapper.ToModel(transcript)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*transcript = *r.mapper.ToEntity(m)
	return nil
}

func (r *TranscriptRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Transcript{}).Error
}

func (r *TranscriptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
	var m model.Transcript
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TranscriptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error) {
	var models []*model.Transcript
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TranscriptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Transcript{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TranscriptRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TranscriptStatus, message string) error {
	return r.db.WithContext(ctx).Model(&model.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        string(status),
			"error_message": message,
		}).Error
}
