package service

import (
	"context"
	"testing"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveGeneratesAllDocuments(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	_, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	res, err := svc.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)

	assert.Len(t, res.GeneratedDocuments, 6)
	assert.Empty(t, res.FailedDocuments)
	assert.Equal(t, string(entity.ApprovalApproved), res.Arrangement.ApprovalStatus)
	assert.Equal(t, string(entity.DocGenCompleted), res.Arrangement.DocGenerationStatus)
	assert.NotNil(t, res.Arrangement.ApprovedAt)
	assert.Len(t, res.Arrangement.GeneratedDocuments, 6)
	for i, doc := range res.GeneratedDocuments {
		assert.Equal(t, string(entity.AllDocumentTypes[i]), doc.Type)
		assert.Equal(t, entity.ContentTypePDF, doc.ContentType)
		assert.Equal(t, doc.Id, res.Arrangement.GeneratedDocuments[doc.Type])
	}

	tasks, err := NewTaskService(f.uowFactory, f.log).List(ctx, owner.Id, arrangementId)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Follow up on documents for Margaret Ann O'Neil", tasks[0].Title)
	assert.Equal(t, string(entity.TaskPriorityMedium), tasks[0].Priority)

	require.Len(t, f.publisher.generated, 1)
	assert.Len(t, f.publisher.generated[0], 6)

	stored, err := svc.GetByTranscript(ctx, owner.Id, res.Arrangement.TranscriptId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.DocGenCompleted), stored.DocGenerationStatus)
	assert.Len(t, stored.GeneratedDocuments, 6)
}

func TestApproveWithFailingModelIsPartial(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	_, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{err: errModelDown}), f.tracker, f.publisher, f.log)
	res, err := svc.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(entity.DocGenPartial), res.Arrangement.DocGenerationStatus)
	generated := map[string]bool{}
	for _, d := range res.GeneratedDocuments {
		generated[d.Type] = true
	}
	assert.Equal(t, map[string]bool{
		string(entity.DocumentTasks):         true,
		string(entity.DocumentArrangerTasks): true,
	}, generated)
	assert.Len(t, res.FailedDocuments, 4)

	tasks, err := NewTaskService(f.uowFactory, f.log).List(ctx, owner.Id, arrangementId)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, string(entity.TaskPriorityHigh), tasks[0].Priority)
	assert.Contains(t, tasks[0].Description, entity.DocumentContract.Title())
}

func TestApproveWithoutLLMChangesNothing(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	transcriptId, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(nil), f.tracker, f.publisher, f.log)
	_, err := svc.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	assert.ErrorIs(t, err, apperror.ErrLLMNotConfigured)

	got, err := svc.GetByTranscript(ctx, owner.Id, transcriptId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ApprovalPending), got.ApprovalStatus)
	assert.Equal(t, string(entity.DocGenNotStarted), got.DocGenerationStatus)
}

func TestApproveOtherUsersArrangement(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	stranger := f.user(t, "b@example.com", entity.UserRoleUser)
	ctx := context.Background()
	transcriptId, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	_, err := svc.Approve(ctx, stranger.Id, arrangementId, dto.GenerationRequest{})
	assert.ErrorIs(t, err, apperror.ErrArrangementNotFound)
	_, err = svc.GetByTranscript(ctx, stranger.Id, transcriptId)
	assert.ErrorIs(t, err, apperror.ErrTranscriptNotFound)
	_, err = svc.ListDocuments(ctx, stranger.Id, arrangementId)
	assert.ErrorIs(t, err, apperror.ErrArrangementNotFound)
}

func TestUpdateByTranscriptKeepsApproval(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	transcriptId, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	_, err := svc.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)

	edited := sampleData
	edited.Deceased.FullName = "Margaret O'Neil"
	res, err := svc.UpdateByTranscript(ctx, owner.Id, transcriptId, &dto.UpdateArrangementRequest{ExtractedData: &edited})
	require.NoError(t, err)
	assert.Equal(t, "Margaret O'Neil", res.DeceasedName)
	assert.Equal(t, string(entity.ApprovalApproved), res.ApprovalStatus)
}

func TestRegenerateAllAddsRows(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	_, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	first, err := svc.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)
	second, err := svc.RegenerateAll(ctx, owner.Id, arrangementId, dto.GenerationRequest{StyleSpecifications: "warm"})
	require.NoError(t, err)

	assert.NotEqual(t, first.GeneratedDocuments[0].Id, second.GeneratedDocuments[0].Id)
	assert.Equal(t, second.GeneratedDocuments[0].Id, second.Arrangement.GeneratedDocuments[string(entity.DocumentContract)])

	docs, err := svc.ListDocuments(ctx, owner.Id, arrangementId)
	require.NoError(t, err)
	assert.Len(t, docs, 12)

	tasks, err := NewTaskService(f.uowFactory, f.log).List(ctx, owner.Id, arrangementId)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDeleteDocumentsLeavesArrangementAndTasks(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	transcriptId, arrangementId := f.processed(t, owner.Id)

	svc := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	res, err := svc.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)

	deleted, err := svc.DeleteDocuments(ctx, owner.Id, arrangementId, &dto.BulkDeleteDocumentsRequest{Type: string(entity.DocumentObituary)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted.Deleted)

	deleted, err = svc.DeleteDocuments(ctx, owner.Id, arrangementId, &dto.BulkDeleteDocumentsRequest{
		Ids: []uuid.UUID{res.GeneratedDocuments[0].Id},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted.Deleted)

	docs, err := svc.ListDocuments(ctx, owner.Id, arrangementId)
	require.NoError(t, err)
	assert.Len(t, docs, 4)

	arrangement, err := svc.GetByTranscript(ctx, owner.Id, transcriptId)
	require.NoError(t, err)
	assert.Equal(t, arrangementId, arrangement.Id)

	uow := f.uowFactory.NewUnitOfWork(ctx)
	tasks, err := uow.FuneralTaskRepository().FindAll(ctx, specification.ByArrangementID{ArrangementID: arrangementId})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	deleted, err = svc.DeleteDocuments(ctx, owner.Id, arrangementId, &dto.BulkDeleteDocumentsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, deleted.Deleted)

	_, err = svc.DeleteDocuments(ctx, owner.Id, arrangementId, &dto.BulkDeleteDocumentsRequest{Type: "eulogy"})
	assert.ErrorIs(t, err, apperror.ErrInvalidDocType)
}
