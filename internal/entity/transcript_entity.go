package entity

import (
	"time"

	"github.com/google/uuid"
)

type TranscriptStatus string

const (
	TranscriptStatusUploaded   TranscriptStatus = "uploaded"
	TranscriptStatusProcessing TranscriptStatus = "processing"
	TranscriptStatusProcessed  TranscriptStatus = "processed"
	TranscriptStatusError      TranscriptStatus = "error"
)

type Transcript struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Filename     string
	Content      string
	FileSize     int64
	Status       TranscriptStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
