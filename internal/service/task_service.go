package service

import (
	"context"
	"time"

	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITaskService interface {
	List(ctx context.Context, userId, arrangementId uuid.UUID) ([]dto.TaskResponse, error)
	Create(ctx context.Context, userId, arrangementId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Update(ctx context.Context, userId, taskId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, userId, taskId uuid.UUID) error
	Toggle(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error)
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ITaskService {
	return &taskService{uowFactory: uowFactory, logger: log, now: time.Now}
}

func (s *taskService) List(ctx context.Context, userId, arrangementId uuid.UUID) ([]dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, _, err := ownedArrangement(ctx, uow, userId, arrangementId); err != nil {
		return nil, err
	}

	tasks, err := uow.FuneralTaskRepository().FindAll(ctx,
		specification.ByArrangementID{ArrangementID: arrangementId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.TaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = dto.NewTaskResponse(t)
	}
	return res, nil
}

func (s *taskService) Create(ctx context.Context, userId, arrangementId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, _, err := ownedArrangement(ctx, uow, userId, arrangementId); err != nil {
		return nil, err
	}

	priority := entity.TaskPriority(req.Priority)
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}
	task := &entity.FuneralTask{
		ArrangementId: arrangementId,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      priority,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	if err := uow.FuneralTaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}

	res := dto.NewTaskResponse(task)
	return &res, nil
}

func (s *taskService) Update(ctx context.Context, userId, taskId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := ownedTask(ctx, uow, userId, taskId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = entity.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Completed != nil && *req.Completed != task.Completed {
		s.setCompleted(task, *req.Completed)
	}

	if err := uow.FuneralTaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	res := dto.NewTaskResponse(task)
	return &res, nil
}

func (s *taskService) Delete(ctx context.Context, userId, taskId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := ownedTask(ctx, uow, userId, taskId)
	if err != nil {
		return err
	}
	return uow.FuneralTaskRepository().Delete(ctx, task.Id)
}

// Toggle flips completion and stamps or clears CompletedAt.
func (s *taskService) Toggle(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := ownedTask(ctx, uow, userId, taskId)
	if err != nil {
		return nil, err
	}

	s.setCompleted(task, !task.Completed)
	if err := uow.FuneralTaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	res := dto.NewTaskResponse(task)
	return &res, nil
}

func (s *taskService) setCompleted(task *entity.FuneralTask, completed bool) {
	task.Completed = completed
	if completed {
		now := s.now()
		task.CompletedAt = &now
		return
	}
	task.CompletedAt = nil
}
