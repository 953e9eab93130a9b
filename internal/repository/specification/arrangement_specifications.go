package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByTranscriptID struct {
	TranscriptID uuid.UUID
}

func (s ByTranscriptID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transcript_id = ?", s.TranscriptID)
}

type ByTranscriptIDs struct {
	TranscriptIDs []uuid.UUID
}

func (s ByTranscriptIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transcript_id IN ?", s.TranscriptIDs)
}

type ByArrangementID struct {
	ArrangementID uuid.UUID
}

func (s ByArrangementID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("arrangement_id = ?", s.ArrangementID)
}

type ByArrangementIDs struct {
	ArrangementIDs []uuid.UUID
}

func (s ByArrangementIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("arrangement_id IN ?", s.ArrangementIDs)
}

type ByApprovalStatus struct {
	Status string
}

func (s ByApprovalStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("approval_status = ?", s.Status)
}

type ByDocumentType struct {
	Type string
}

func (s ByDocumentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByMetricType struct {
	Type string
}

func (s ByMetricType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metric_type = ?", s.Type)
}

// InPeriod keeps metrics bucketed at or after the given period start.
type InPeriod struct {
	Start time.Time
}

func (s InPeriod) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("period_start >= ?", s.Start)
}
