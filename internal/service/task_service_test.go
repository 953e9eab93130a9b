package service

import (
	"context"
	"testing"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	_, arrangementId := f.processed(t, owner.Id)
	svc := NewTaskService(f.uowFactory, f.log)

	task, err := svc.Create(ctx, owner.Id, arrangementId, &dto.CreateTaskRequest{Title: "Order flowers"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TaskPriorityMedium), task.Priority)
	assert.False(t, task.Completed)

	toggled, err := svc.Toggle(ctx, owner.Id, task.Id)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.NotNil(t, toggled.CompletedAt)

	toggled, err = svc.Toggle(ctx, owner.Id, task.Id)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Nil(t, toggled.CompletedAt)

	title, priority, done := "Order lilies", "high", true
	updated, err := svc.Update(ctx, owner.Id, task.Id, &dto.UpdateTaskRequest{Title: &title, Priority: &priority, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, "Order lilies", updated.Title)
	assert.Equal(t, "high", updated.Priority)
	assert.True(t, updated.Completed)
	assert.NotNil(t, updated.CompletedAt)

	require.NoError(t, svc.Delete(ctx, owner.Id, task.Id))
	tasks, err := svc.List(ctx, owner.Id, arrangementId)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	stranger := f.user(t, "b@example.com", entity.UserRoleUser)
	ctx := context.Background()
	_, arrangementId := f.processed(t, owner.Id)
	svc := NewTaskService(f.uowFactory, f.log)

	task, err := svc.Create(ctx, owner.Id, arrangementId, &dto.CreateTaskRequest{Title: "Call florist", Priority: "low"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, stranger.Id, arrangementId, &dto.CreateTaskRequest{Title: "x"})
	assert.ErrorIs(t, err, apperror.ErrArrangementNotFound)
	_, err = svc.List(ctx, stranger.Id, arrangementId)
	assert.ErrorIs(t, err, apperror.ErrArrangementNotFound)
	_, err = svc.Toggle(ctx, stranger.Id, task.Id)
	assert.ErrorIs(t, err, apperror.ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, stranger.Id, task.Id), apperror.ErrTaskNotFound)
}
