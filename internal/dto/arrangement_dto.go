package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

type ArrangementResponse struct {
	Id                  uuid.UUID              `json:"id"`
	TranscriptId        uuid.UUID              `json:"transcriptId"`
	DeceasedName        string                 `json:"deceasedName"`
	ServiceDate         string                 `json:"serviceDate,omitempty"`
	ServiceTime         string                 `json:"serviceTime,omitempty"`
	ServiceLocation     string                 `json:"serviceLocation,omitempty"`
	ServiceType         string                 `json:"serviceType,omitempty"`
	DispositionMethod   string                 `json:"dispositionMethod,omitempty"`
	NextOfKinName       string                 `json:"nextOfKinName,omitempty"`
	NextOfKinPhone      string                 `json:"nextOfKinPhone,omitempty"`
	ExtractedData       entity.ArrangementData `json:"extractedData"`
	GeneratedDocuments  map[string]uuid.UUID   `json:"generatedDocuments"`
	DocGenerationStatus string                 `json:"docGenerationStatus"`
	ApprovalStatus      string                 `json:"approvalStatus"`
	ApprovedAt          *time.Time             `json:"approvedAt,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func NewArrangementResponse(a *entity.Arrangement) ArrangementResponse {
	generated := make(map[string]uuid.UUID, len(a.GeneratedDocuments))
	for t, id := range a.GeneratedDocuments {
		generated[string(t)] = id
	}
	return ArrangementResponse{
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
		ExtractedData:       a.Data,
		GeneratedDocuments:  generated,
		DocGenerationStatus: string(a.DocGenerationStatus),
		ApprovalStatus:      string(a.ApprovalStatus),
		ApprovedAt:          a.ApprovedAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

type UpdateArrangementRequest struct {
	ExtractedData *entity.ArrangementData `json:"extractedData" validate:"required"`
}

// GenerationRequest drives approve and regenerate-all. The body is optional.
type GenerationRequest struct {
	Enhanced            bool   `json:"enhanced"`
	StyleSpecifications string `json:"styleSpecifications" validate:"omitempty,max=2000"`
}

type FailedDocument struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type GenerationResponse struct {
	Arrangement        ArrangementResponse `json:"arrangement"`
	GeneratedDocuments []DocumentResponse  `json:"generatedDocuments"`
	FailedDocuments    []FailedDocument    `json:"failedDocuments"`
}

type BulkDeleteDocumentsRequest struct {
	// Ids limits the deletion; empty deletes every document of the arrangement.
	Ids  []uuid.UUID `json:"ids"`
	Type string      `json:"type" validate:"omitempty,oneof=contract summary obituary tasks arranger_tasks death_cert"`
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
