package dto

import (
	"time"

	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	Notes       string     `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateTaskRequest changes only the fields that are set.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
	Notes       *string    `json:"notes" validate:"omitempty,max=2000"`
}

type TaskResponse struct {
	Id            uuid.UUID  `json:"id"`
	ArrangementId uuid.UUID  `json:"arrangementId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func NewTaskResponse(t *entity.FuneralTask) TaskResponse {
	return TaskResponse{
		Id:            t.Id,
		ArrangementId: t.ArrangementId,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		DueDate:       t.DueDate,
		Completed:     t.Completed,
		CompletedAt:   t.CompletedAt,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}
