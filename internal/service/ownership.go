package service

import (
	"context"
	"errors"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Records owned by someone else are reported as not found.

func ownedTranscript(ctx context.Context, uow unitofwork.UnitOfWork, userId, transcriptId uuid.UUID) (*entity.Transcript, error) {
	transcript, err := uow.TranscriptRepository().FindOne(ctx,
		specification.ByID{ID: transcriptId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, apperror.ErrTranscriptNotFound
	}
	return transcript, nil
}

func arrangementForTranscript(ctx context.Context, uow unitofwork.UnitOfWork, userId, transcriptId uuid.UUID) (*entity.Arrangement, *entity.Transcript, error) {
	transcript, err := ownedTranscript(ctx, uow, userId, transcriptId)
	if err != nil {
		return nil, nil, err
	}
	arrangement, err := uow.ArrangementRepository().FindOne(ctx, specification.ByTranscriptID{TranscriptID: transcript.Id})
	if err != nil {
		return nil, nil, err
	}
	if arrangement == nil {
		return nil, nil, apperror.ErrArrangementNotFound
	}
	return arrangement, transcript, nil
}

func ownedArrangement(ctx context.Context, uow unitofwork.UnitOfWork, userId, arrangementId uuid.UUID) (*entity.Arrangement, *entity.Transcript, error) {
	arrangement, err := uow.ArrangementRepository().FindOne(ctx, specification.ByID{ID: arrangementId})
	if err != nil {
		return nil, nil, err
	}
	if arrangement == nil {
		return nil, nil, apperror.ErrArrangementNotFound
	}
	transcript, err := uow.TranscriptRepository().FindOne(ctx,
		specification.ByID{ID: arrangement.TranscriptId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, nil, err
	}
	if transcript == nil {
		return nil, nil, apperror.ErrArrangementNotFound
	}
	return arrangement, transcript, nil
}

func ownedDocument(ctx context.Context, uow unitofwork.UnitOfWork, userId, documentId uuid.UUID) (*entity.Document, *entity.Arrangement, error) {
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, apperror.ErrDocumentNotFound
	}
	arrangement, _, err := ownedArrangement(ctx, uow, userId, doc.ArrangementId)
	if err != nil {
		if errors.Is(err, apperror.ErrArrangementNotFound) {
			return nil, nil, apperror.ErrDocumentNotFound
		}
		return nil, nil, err
	}
	return doc, arrangement, nil
}

func ownedTask(ctx context.Context, uow unitofwork.UnitOfWork, userId, taskId uuid.UUID) (*entity.FuneralTask, error) {
	task, err := uow.FuneralTaskRepository().FindOne(ctx, specification.ByID{ID: taskId})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.ErrTaskNotFound
	}
	if _, _, err := ownedArrangement(ctx, uow, userId, task.ArrangementId); err != nil {
		if errors.Is(err, apperror.ErrArrangementNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}
