package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Arrangement struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TranscriptId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	DeceasedName        string         `gorm:"type:varchar(255)"`
	ServiceDate         string         `gorm:"type:varchar(100)"`
	ServiceTime         string         `gorm:"type:varchar(100)"`
	ServiceLocation     string         `gorm:"type:varchar(255)"`
	ServiceType         string         `gorm:"type:varchar(100)"`
	DispositionMethod   string         `gorm:"type:varchar(100)"`
	NextOfKinName       string         `gorm:"type:varchar(255)"`
	NextOfKinPhone      string         `gorm:"type:varchar(50)"`
	ExtractedData       datatypes.JSON `gorm:"not null"`
	GeneratedDocuments  datatypes.JSON
	DocGenerationStatus string     `gorm:"type:varchar(20);not null;default:'not_started'"`
	ApprovalStatus      string     `gorm:"type:varchar(20);not null;default:'pending'"`
	ApprovedAt          *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (Arrangement) TableName() string {
	return "arrangements"
}
