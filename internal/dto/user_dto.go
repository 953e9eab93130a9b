// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"fullName"`
	Role               string    `json:"role"`
	FuneralHome        string    `json:"funeralHome,omitempty"`
	BillingPeriodStart time.Time `json:"billingPeriodStart"`
	CreatedAt          time.Time `json:"createdAt"`
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		Id:                 u.Id,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               string(u.Role),
		FuneralHome:        u.FuneralHome,
		BillingPeriodStart: u.BillingPeriodStart,
		CreatedAt:          u.CreatedAt,
	}
}
