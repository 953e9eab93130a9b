package mapper

import (
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/model"
)

type TranscriptMapper struct{}

func NewTranscriptMapper() *TranscriptMapper {
	return &TranscriptMapper{}
}

func (m *TranscriptMapper) ToEntity(t *model.Transcript) *entity.Transcript {
	if t == nil {
		return nil
	}
	return &entity.Transcript{
		Id:           t.Id,
		UserId:       t.UserId,
		Filename:     t.Filename,
		Content:      t.Content,
		FileSize:     t.FileSize,
		Status:       entity.TranscriptStatus(t.Status),
		ErrorMessage: t.ErrorMessage,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *TranscriptMapper) ToModel(t *entity.Transcript) *model.Transcript {
	if t == nil {
		return nil
	}
	return &model.Transcript{
		Id:           t.Id,
		UserId:       t.UserId,
		Filename:     t.Filename,
		Content:      t.Content,
		FileSize:     t.FileSize,
		Status:       string(t.Status),
		ErrorMessage: t.ErrorMessage,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *TranscriptMapper) ToEntities(items []*model.Transcript) []*entity.Transcript {
	out := make([]*entity.Transcript, len(items))
	for i, t := range items {
		out[i] = m.ToEntity(t)
	}
	return out
}
