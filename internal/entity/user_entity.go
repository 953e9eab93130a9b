// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser    UserRole = "user"
	UserRolePremium UserRole = "premium"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRolePremium, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         UserRole
	FuneralHome  string
	// BillingPeriodStart opens the current usage counting window.
	BillingPeriodStart time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type PasswordResetToken struct {
	Id        uuid.UUID
	Email     string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the token can still reset a password at now.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t != nil && !t.Used && now.Before(t.ExpiresAt)
}
