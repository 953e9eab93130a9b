package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

type GenerateDocumentRequest struct {
	ArrangementId       uuid.UUID `json:"arrangementId" validate:"required"`
	Type                string    `json:"type" validate:"required,oneof=contract summary obituary tasks arranger_tasks death_cert"`
	Enhanced            bool      `json:"enhanced"`
	StyleSpecifications string    `json:"styleSpecifications" validate:"omitempty,max=2000"`
}

// UpdateDocumentRequest re-renders a document from edited plain text.
type UpdateDocumentRequest struct {
	PlainText string `json:"plainText" validate:"required"`
	Title     string `json:"title" validate:"omitempty,max=200"`
	Enhanced  bool   `json:"enhanced"`
}

type DocumentResponse struct {
	Id            uuid.UUID `json:"id"`
	ArrangementId uuid.UUID `json:"arrangementId"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	ContentType   string    `json:"contentType"`
	Content       string    `json:"content,omitempty"`
	PlainText     string    `json:"plainText"`
	Status        string    `json:"status"`
	Renderer      string    `json:"renderer"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewDocumentResponse leaves the base64 content out of list views.
func NewDocumentResponse(d *entity.Document, withContent bool) DocumentResponse {
	res := DocumentResponse{
		Id:            d.Id,
		ArrangementId: d.ArrangementId,
		Type:          string(d.Type),
		Title:         d.Title,
		ContentType:   d.ContentType,
		PlainText:     d.PlainText,
		Status:        string(d.Status),
		Renderer:      d.Renderer,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if withContent {
		res.Content = d.Content
	}
	return res
}
