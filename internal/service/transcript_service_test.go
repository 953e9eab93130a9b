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

func TestUploadRejectsPDFAndEmpty(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	svc := NewTranscriptService(f.uowFactory, nil, f.tracker, f.publisher, f.log)

	tests := []struct {
		name     string
		filename string
		content  string
		want     error
	}{
		{"pdf extension", "call.PDF", "plain text", apperror.ErrPDFUpload},
		{"pdf magic bytes", "call.txt", "%PDF-1.7 ...", apperror.ErrPDFUpload},
		{"empty", "call.txt", "", apperror.ErrEmptyTranscript},
		{"whitespace only", "call.txt", " \n\t ", apperror.ErrEmptyTranscript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), owner.Id, tt.filename, []byte(tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := svc.List(context.Background(), owner.Id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUploadStoresText(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	svc := NewTranscriptService(f.uowFactory, nil, f.tracker, f.publisher, f.log)
	ctx := context.Background()

	res, err := svc.Upload(ctx, owner.Id, "", []byte("Director: hello\xff"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.TranscriptStatusUploaded), res.Status)
	assert.Contains(t, res.Filename, "transcript-")
	assert.Empty(t, res.Content)

	got, err := svc.Get(ctx, owner.Id, res.Id)
	require.NoError(t, err)
	assert.Equal(t, "Director: hello", got.Content)
}

func TestTranscriptOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	stranger := f.user(t, "b@example.com", entity.UserRoleUser)
	svc := NewTranscriptService(f.uowFactory, fakeExtractor{data: sampleData}, f.tracker, f.publisher, f.log)
	ctx := context.Background()

	res, err := svc.Upload(ctx, owner.Id, "call.txt", []byte("text"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger.Id, res.Id)
	assert.ErrorIs(t, err, apperror.ErrTranscriptNotFound)
	_, err = svc.Process(ctx, stranger.Id, res.Id)
	assert.ErrorIs(t, err, apperror.ErrTranscriptNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, stranger.Id, res.Id), apperror.ErrTranscriptNotFound)

	list, err := svc.List(ctx, stranger.Id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProcessWithoutLLM(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	svc := NewTranscriptService(f.uowFactory, nil, f.tracker, f.publisher, f.log)

	_, err := svc.Process(context.Background(), owner.Id, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrLLMNotConfigured)
}

func TestProcessCreatesThenUpdatesArrangement(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	svc := NewTranscriptService(f.uowFactory, fakeExtractor{data: sampleData}, f.tracker, f.publisher, f.log)
	ctx := context.Background()

	tr, err := svc.Upload(ctx, owner.Id, "call.txt", []byte("Director: hello"))
	require.NoError(t, err)

	first, err := svc.Process(ctx, owner.Id, tr.Id)
	require.NoError(t, err)
	assert.Equal(t, "Margaret Ann O'Neil", first.Arrangement.DeceasedName)
	assert.Equal(t, string(entity.ApprovalPending), first.Arrangement.ApprovalStatus)
	assert.Equal(t, string(entity.DocGenNotStarted), first.Arrangement.DocGenerationStatus)

	got, err := svc.Get(ctx, owner.Id, tr.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TranscriptStatusProcessed), got.Status)

	second, err := svc.Process(ctx, owner.Id, tr.Id)
	require.NoError(t, err)
	assert.Equal(t, first.Arrangement.Id, second.Arrangement.Id)

	uow := f.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.ArrangementRepository().Count(ctx, specification.ByTranscriptID{TranscriptID: tr.Id})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, f.publisher.processed, 2)
}

func TestProcessFailureMarksError(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	svc := NewTranscriptService(f.uowFactory, fakeExtractor{err: errModelDown}, f.tracker, f.publisher, f.log)
	ctx := context.Background()

	tr, err := svc.Upload(ctx, owner.Id, "call.txt", []byte("Director: hello"))
	require.NoError(t, err)

	_, err = svc.Process(ctx, owner.Id, tr.Id)
	assert.ErrorIs(t, err, apperror.ErrExtraction)

	got, err := svc.Get(ctx, owner.Id, tr.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TranscriptStatusError), got.Status)
	assert.Equal(t, errModelDown.Error(), got.ErrorMessage)
	assert.Empty(t, f.publisher.processed)
}

func TestDeleteTranscriptCascades(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	transcriptId, arrangementId := f.processed(t, owner.Id)

	arrangements := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	_, err := arrangements.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)

	svc := NewTranscriptService(f.uowFactory, nil, f.tracker, f.publisher, f.log)
	require.NoError(t, svc.Delete(ctx, owner.Id, transcriptId))

	uow := f.uowFactory.NewUnitOfWork(ctx)
	arrangement, err := uow.ArrangementRepository().FindOne(ctx, specification.ByID{ID: arrangementId})
	require.NoError(t, err)
	assert.Nil(t, arrangement)
	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByArrangementID{ArrangementID: arrangementId})
	require.NoError(t, err)
	assert.Empty(t, docs)
	tasks, err := uow.FuneralTaskRepository().FindAll(ctx, specification.ByArrangementID{ArrangementID: arrangementId})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
