package mapper

import (
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:            d.Id,
		ArrangementId: d.ArrangementId,
		Type:          entity.DocumentType(d.Type),
		Title:         d.Title,
		Content:       d.Content,
		ContentType:   d.ContentType,
		PlainText:     d.PlainText,
		Status:        entity.DocumentStatus(d.Status),
		Renderer:      d.Renderer,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:            d.Id,
		ArrangementId: d.ArrangementId,
		Type:          string(d.Type),
		Title:         d.Title,
		Content:       d.Content,
		ContentType:   d.ContentType,
		PlainText:     d.PlainText,
		Status:        string(d.Status),
		Renderer:      d.Renderer,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(items []*model.Document) []*entity.Document {
	out := make([]*entity.Document, len(items))
	for i, d := range items {
		out[i] = m.ToEntity(d)
	}
	return out
}

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.FuneralTask) *entity.FuneralTask {
	if t == nil {
		return nil
	}
	return &entity.FuneralTask{
		Id:            t.Id,
		ArrangementId: t.ArrangementId,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      entity.TaskPriority(t.Priority),
		DueDate:       t.DueDate,
		Completed:     t.Completed,
		CompletedAt:   t.CompletedAt,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (m *TaskMapper) ToModel(t *entity.FuneralTask) *model.FuneralTask {
	if t == nil {
		return nil
	}
	return &model.FuneralTask{
		Id:            t.Id,
		ArrangementId: t.ArrangementId,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		DueDate:       t.DueDate,
		Completed:     t.Completed,
		CompletedAt:   t.CompletedAt,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (m *TaskMapper) ToEntities(items []*model.FuneralTask) []*entity.FuneralTask {
	out := make([]*entity.FuneralTask, len(items))
	for i, t := range items {
		out[i] = m.ToEntity(t)
	}
	return out
}
