// FILE: internal/dto/admin_dto.go
package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role" validate:"omitempty,oneof=user premium admin"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type AdminUserDetailResponse struct {
	User           UserResponse            `json:"user"`
	Usage          UsageStatsResponse      `json:"usage"`
	BillingPeriods []BillingPeriodResponse `json:"billingPeriods"`
}

type AdminUpdateUserRequest struct {
	FullName    *string `json:"fullName" validate:"omitempty,min=2,max=120"`
	FuneralHome *string `json:"funeralHome" validate:"omitempty,max=200"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user premium admin"`
}

type BillingPeriodResponse struct {
	Id                   uuid.UUID `json:"id"`
	Role                 string    `json:"role"`
	NewRole              string    `json:"newRole"`
	PeriodStart          time.Time `json:"periodStart"`
	PeriodEnd            time.Time `json:"periodEnd"`
	TranscriptsProcessed int       `json:"transcriptsProcessed"`
	DocumentsGenerated   int       `json:"documentsGenerated"`
}

func NewBillingPeriodResponse(p *entity.BillingPeriod) BillingPeriodResponse {
	return BillingPeriodResponse{
		Id:                   p.Id,
		Role:                 string(p.Role),
		NewRole:              string(p.NewRole),
		PeriodStart:          p.PeriodStart,
		PeriodEnd:            p.PeriodEnd,
		TranscriptsProcessed: p.TranscriptsProcessed,
		DocumentsGenerated:   p.DocumentsGenerated,
	}
}

type ChangeRoleResponse struct {
	User          UserResponse          `json:"user"`
	BillingPeriod BillingPeriodResponse `json:"billingPeriod"`
}

type ReconcileResponse struct {
	TranscriptMetricsCreated int `json:"transcriptMetricsCreated"`
	DocumentMetricsCreated   int `json:"documentMetricsCreated"`
}

type AdminOverviewResponse struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalTranscripts     int64 `json:"totalTranscripts"`
	FailedTranscripts    int64 `json:"failedTranscripts"`
	TotalArrangements    int64 `json:"totalArrangements"`
	ApprovedArrangements int64 `json:"approvedArrangements"`
	TotalDocuments       int64 `json:"totalDocuments"`
}
