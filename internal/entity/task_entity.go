package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type FuneralTask struct {
	Id            uuid.UUID
	ArrangementId uuid.UUID
	Title         string
	Description   string
	Priority      TaskPriority
	DueDate       *time.Time
	Completed     bool
	CompletedAt   *time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
