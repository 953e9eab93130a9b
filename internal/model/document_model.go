package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ArrangementId uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"type:varchar(30);not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Content       string    `gorm:"type:text;not null"`
	ContentType   string    `gorm:"type:varchar(50);not null;default:'application/pdf'"`
	PlainText     string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);not null;default:'generated'"`
	Renderer      string    `gorm:"type:varchar(20)"`
	Version       int       `gorm:"not null;default:1"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
