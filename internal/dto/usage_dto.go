// FILE: internal/dto/usage_dto.go
// DTOs for usage analytics
package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

type UsageCounts struct {
	TranscriptsProcessed int `json:"transcriptsProcessed"`
	DocumentsGenerated   int `json:"documentsGenerated"`
}

type UsageStatsResponse struct {
	UserId        uuid.UUID   `json:"userId"`
	Email         string      `json:"email"`
	FullName      string      `json:"fullName"`
	Role          string      `json:"role"`
	PeriodStart   time.Time   `json:"periodStart"`
	CurrentPeriod UsageCounts `json:"currentPeriod"`
	Lifetime      UsageCounts `json:"lifetime"`
	Arrangements  int         `json:"arrangements"`
	Approved      int         `json:"approved"`
}

func NewUsageStatsResponse(s *entity.UsageStats) UsageStatsResponse {
	return UsageStatsResponse{
		UserId:        s.UserId,
		Email:         s.Email,
		FullName:      s.FullName,
		Role:          string(s.Role),
		PeriodStart:   s.PeriodStart,
		CurrentPeriod: UsageCounts{TranscriptsProcessed: s.TranscriptsProcessed, DocumentsGenerated: s.DocumentsGenerated},
		Lifetime:      UsageCounts{TranscriptsProcessed: s.TotalTranscripts, DocumentsGenerated: s.TotalDocuments},
		Arrangements:  s.Arrangements,
		Approved:      s.Approved,
	}
}

type TrendPoint struct {
	Date                 string `json:"date"`
	TranscriptsProcessed int    `json:"transcriptsProcessed"`
	DocumentsGenerated   int    `json:"documentsGenerated"`
}

type TrendsResponse struct {
	UserId uuid.UUID    `json:"userId"`
	Days   int          `json:"days"`
	Points []TrendPoint `json:"points"`
}
