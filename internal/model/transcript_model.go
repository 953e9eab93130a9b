package model

import (
	"time"

	"github.com/google/uuid"
)

type Transcript struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename     string    `gorm:"type:varchar(255);not null"`
	Content      string    `gorm:"type:text;not null"`
	FileSize     int64     `gorm:"not null;default:0"`
	Status       string    `gorm:"type:varchar(20);not null;default:'uploaded';index"`
	ErrorMessage string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Transcript) TableName() string {
	return "transcripts"
}
