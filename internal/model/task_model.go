package model

import (
	"time"

	"github.com/google/uuid"
)

type FuneralTask struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ArrangementId uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Priority      string    `gorm:"type:varchar(10);not null;default:'medium'"`
	DueDate       *time.Time
	Completed     bool `gorm:"default:false"`
	CompletedAt   *time.Time
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (FuneralTask) TableName() string {
	return "funeral_tasks"
}
