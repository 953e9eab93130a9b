package mapper

import (
	"encoding/json"
	"fmt"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ArrangementMapper struct{}

func NewArrangementMapper() *ArrangementMapper {
	return &ArrangementMapper{}
}

func (m *ArrangementMapper) ToEntity(a *model.Arrangement) (*entity.Arrangement, error) {
	if a == nil {
		return nil, nil
	}
	out := &entity.Arrangement{
		Id:                  a.Id,
		TranscriptId:        a.TranscriptId,
		DeceasedName:        a.DeceasedName,
		ServiceDate:         a.ServiceDate,
		ServiceTime:         a.ServiceTime,
		ServiceLocation:     a.ServiceLocation,
		ServiceType:         a.ServiceType,
		DispositionMethod:   a.DispositionMethod,
		NextOfKinName:       a.NextOfKinName,
		NextOfKinPhone:      a.NextOfKinPhone,
		DocGenerationStatus: entity.DocGenerationStatus(a.DocGenerationStatus),
		ApprovalStatus:      entity.ApprovalStatus(a.ApprovalStatus),
		ApprovedAt:          a.ApprovedAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
	if len(a.ExtractedData) > 0 {
		if err := json.Unmarshal(a.ExtractedData, &out.Data); err != nil {
			return nil, fmt.Errorf("decode extracted data: %w", err)
		}
	}
	if len(a.GeneratedDocuments) > 0 {
		docs := map[entity.DocumentType]uuid.UUID{}
		if err := json.Unmarshal(a.GeneratedDocuments, &docs); err != nil {
			return nil, fmt.Errorf("decode generated documents: %w", err)
		}
		out.GeneratedDocuments = docs
	}
	return out, nil
}

func (m *ArrangementMapper) ToModel(a *entity.Arrangement) (*model.Arrangement, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a.Data)
	if err != nil {
		return nil, fmt.Errorf("encode extracted data: %w", err)
	}
	out := &model.Arrangement{
		Id:                  a.Id,
		TranscriptId:        a.TranscriptId,
		DeceasedName:        a.DeceasedName,
		ServiceDate:         a.ServiceDate,
		ServiceTime:         a.ServiceTime,
		ServiceLocation:     a.ServiceLocation,
		ServiceType:         a.ServiceType,
		DispositionMethod:   a.DispositionMethod,
		NextOfKinName:       a.NextOfKinName,
		NextOfKinPhone:      a.NextOfKinPhone,
		ExtractedData:       datatypes.JSON(data),
		DocGenerationStatus: string(a.DocGenerationStatus),
		ApprovalStatus:      string(a.ApprovalStatus),
		ApprovedAt:          a.ApprovedAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
	if a.GeneratedDocuments != nil {
		docs, err := json.Marshal(a.GeneratedDocuments)
		if err != nil {
			return nil, fmt.Errorf("encode generated documents: %w", err)
		}
		out.GeneratedDocuments = datatypes.JSON(docs)
	}
	return out, nil
}
