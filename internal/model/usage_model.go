package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageMetric struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index:idx_usage_user_type"`
	MetricType  string     `gorm:"type:varchar(40);not null;index:idx_usage_user_type"`
	ResourceId  *uuid.UUID `gorm:"type:uuid;index"`
	Count       int        `gorm:"not null;default:1"`
	PeriodStart time.Time  `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
}

func (UsageMetric) TableName() string {
	return "usage_metrics"
}

type BillingPeriod struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId               uuid.UUID `gorm:"type:uuid;not null;index"`
	Role                 string    `gorm:"type:varchar(50);not null"`
	NewRole              string    `gorm:"type:varchar(50);not null"`
	PeriodStart          time.Time `gorm:"not null"`
	PeriodEnd            time.Time `gorm:"not null"`
	TranscriptsProcessed int       `gorm:"not null;default:0"`
	DocumentsGenerated   int       `gorm:"not null;default:0"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
}

func (BillingPeriod) TableName() string {
	return "billing_periods"
}
