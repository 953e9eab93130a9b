package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email              string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string         `gorm:"type:varchar(255);not null"`
	FullName           string         `gorm:"type:varchar(255);not null"`
	Role               string         `gorm:"type:varchar(50);not null;default:'user'"`
	FuneralHome        string         `gorm:"type:varchar(255)"`
	BillingPeriodStart time.Time      `gorm:"not null"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type PasswordResetToken struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_resets"
}
