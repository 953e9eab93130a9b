package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

// UploadTranscriptRequest is the JSON alternative to a multipart upload.
type UploadTranscriptRequest struct {
	Filename string `json:"filename" validate:"omitempty,max=255"`
	Content  string `json:"content" validate:"required"`
}

type TranscriptResponse struct {
	Id           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"fileSize"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Content      string    `json:"content,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewTranscriptResponse(t *entity.Transcript, withContent bool) TranscriptResponse {
	res := TranscriptResponse{
		Id:           t.Id,
		Filename:     t.Filename,
		FileSize:     t.FileSize,
		Status:       string(t.Status),
		ErrorMessage: t.ErrorMessage,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if withContent {
		res.Content = t.Content
	}
	return res
}

type ProcessTranscriptResponse struct {
	Arrangement   ArrangementResponse    `json:"arrangement"`
	ExtractedData entity.ArrangementData `json:"extractedData"`
}
