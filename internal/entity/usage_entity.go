package entity

import (
	"time"

	"github.com/google/uuid"
)

type MetricType string

const (
	MetricTranscriptProcessed MetricType = "transcript_processed"
	MetricDocumentGenerated   MetricType = "document_generated"
)

// UsageMetric is an append-only counter row. ResourceId points at the
// transcript or document that produced it.
type UsageMetric struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	MetricType  MetricType
	ResourceId  *uuid.UUID
	Count       int
	PeriodStart time.Time
	CreatedAt   time.Time
}

// BillingPeriod is the snapshot written when an admin changes a user's role.
type BillingPeriod struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	Role                 UserRole
	NewRole              UserRole
	PeriodStart          time.Time
	PeriodEnd            time.Time
	TranscriptsProcessed int
	DocumentsGenerated   int
	CreatedAt            time.Time
}

// DailyUsage is one bucket of a usage trend.
type DailyUsage struct {
	Date                 string
	TranscriptsProcessed int
	DocumentsGenerated   int
}

type UsageStats struct {
	UserId               uuid.UUID
	Email                string
	FullName             string
	Role                 UserRole
	PeriodStart          time.Time
	TranscriptsProcessed int
	DocumentsGenerated   int
	TotalTranscripts     int
	TotalDocuments       int
	Arrangements         int
	Approved             int
}
