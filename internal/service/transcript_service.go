package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"
	adminEvents "funeral-docs-be/pkg/admin/events"
	"funeral-docs-be/pkg/admin/usage"

	"github.com/google/uuid"
)

// Extractor turns transcript text into arrangement data.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (entity.ArrangementData, error)
}

type ITranscriptService interface {
	Upload(ctx context.Context, userId uuid.UUID, filename string, content []byte) (*dto.TranscriptResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.TranscriptResponse, error)
	Get(ctx context.Context, userId, transcriptId uuid.UUID) (*dto.TranscriptResponse, error)
	Delete(ctx context.Context, userId, transcriptId uuid.UUID) error
	Process(ctx context.Context, userId, transcriptId uuid.UUID) (*dto.ProcessTranscriptResponse, error)
}

type transcriptService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  Extractor
	tracker    *usage.Tracker
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

// NewTranscriptService takes a nil extractor when no LLM is configured;
// Process then fails with ErrLLMNotConfigured.
func NewTranscriptService(uowFactory unitofwork.RepositoryFactory, extractor Extractor, tracker *usage.Tracker, publisher adminEvents.Publisher, log logger.ILogger) ITranscriptService {
	return &transcriptService{
		uowFactory: uowFactory,
		extractor:  extractor,
		tracker:    tracker,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *transcriptService) Upload(ctx context.Context, userId uuid.UUID, filename string, content []byte) (*dto.TranscriptResponse, error) {
	filename = strings.TrimSpace(filepath.Base(filename))
	if strings.EqualFold(filepath.Ext(filename), ".pdf") || bytes.HasPrefix(content, []byte("%PDF")) {
		return nil, apperror.ErrPDFUpload
	}

	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ErrEmptyTranscript
	}
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = fmt.Sprintf("transcript-%s.txt", time.Now().Format("2006-01-02-150405"))
	}

	transcript := &entity.Transcript{
		UserId:   userId,
		Filename: filename,
		Content:  text,
		FileSize: int64(len(content)),
		Status:   entity.TranscriptStatusUploaded,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TranscriptRepository().Create(ctx, transcript); err != nil {
		return nil, err
	}

	s.logger.Info("TRANSCRIPT", "Transcript uploaded", map[string]interface{}{
		"transcript_id": transcript.Id.String(),
		"size":          transcript.FileSize,
	})
	res := dto.NewTranscriptResponse(transcript, false)
	return &res, nil
}

func (s *transcriptService) List(ctx context.Context, userId uuid.UUID) ([]dto.TranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	transcripts, err := uow.TranscriptRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.TranscriptResponse, len(transcripts))
	for i, t := range transcripts {
		res[i] = dto.NewTranscriptResponse(t, false)
	}
	return res, nil
}

func (s *transcriptService) Get(ctx context.Context, userId, transcriptId uuid.UUID) (*dto.TranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	transcript, err := ownedTranscript(ctx, uow, userId, transcriptId)
	if err != nil {
		return nil, err
	}
	res := dto.NewTranscriptResponse(transcript, true)
	return &res, nil
}

// Delete removes the transcript with its arrangement, documents and tasks.
func (s *transcriptService) Delete(ctx context.Context, userId, transcriptId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	transcript, err := ownedTranscript(ctx, uow, userId, transcriptId)
	if err != nil {
		return err
	}
	arrangement, err := uow.ArrangementRepository().FindOne(ctx, specification.ByTranscriptID{TranscriptID: transcript.Id})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if arrangement != nil {
		if _, err := uow.DocumentRepository().DeleteWhere(ctx, specification.ByArrangementID{ArrangementID: arrangement.Id}); err != nil {
			return err
		}
		if _, err := uow.FuneralTaskRepository().DeleteWhere(ctx, specification.ByArrangementID{ArrangementID: arrangement.Id}); err != nil {
			return err
		}
		if err := uow.ArrangementRepository().Delete(ctx, arrangement.Id); err != nil {
			return err
		}
	}
	if err := uow.TranscriptRepository().Delete(ctx, transcript.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("TRANSCRIPT", "Transcript deleted", map[string]interface{}{"transcript_id": transcriptId.String()})
	return nil
}

// Process extracts arrangement data. A second run replaces the data of the
// existing arrangement rather than creating another one.
func (s *transcriptService) Process(ctx context.Context, userId, transcriptId uuid.UUID) (*dto.ProcessTranscriptResponse, error) {
	if s.extractor == nil {
		return nil, apperror.ErrLLMNotConfigured
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	transcript, err := ownedTranscript(ctx, uow, userId, transcriptId)
	if err != nil {
		return nil, err
	}

	if err := uow.TranscriptRepository().UpdateStatus(ctx, transcript.Id, entity.TranscriptStatusProcessing, ""); err != nil {
		return nil, err
	}

	data, err := s.extractor.Extract(ctx, transcript.Content)
	if err != nil {
		s.fail(ctx, uow, transcript.Id, err)
		return nil, fmt.Errorf("%w: %s", apperror.ErrExtraction, err.Error())
	}

	arrangement, err := s.saveArrangement(ctx, uow, transcript.Id, data)
	if err != nil {
		s.fail(ctx, uow, transcript.Id, err)
		return nil, err
	}

	if err := uow.TranscriptRepository().UpdateStatus(ctx, transcript.Id, entity.TranscriptStatusProcessed, ""); err != nil {
		return nil, err
	}
	if err := s.tracker.Record(ctx, uow, userId, entity.MetricTranscriptProcessed, transcript.Id); err != nil {
		s.logger.Warn("TRANSCRIPT", "Failed to record usage", map[string]interface{}{"error": err.Error()})
	}
	s.publisher.PublishTranscriptProcessed(ctx, userId, transcript.Id, arrangement.Id, arrangement.DeceasedName)

	s.logger.Info("TRANSCRIPT", "Transcript processed", map[string]interface{}{
		"transcript_id":  transcript.Id.String(),
		"arrangement_id": arrangement.Id.String(),
	})
	return &dto.ProcessTranscriptResponse{
		Arrangement:   dto.NewArrangementResponse(arrangement),
		ExtractedData: data,
	}, nil
}

func (s *transcriptService) saveArrangement(ctx context.Context, uow unitofwork.UnitOfWork, transcriptId uuid.UUID, data entity.ArrangementData) (*entity.Arrangement, error) {
	arrangement, err := uow.ArrangementRepository().FindOne(ctx, specification.ByTranscriptID{TranscriptID: transcriptId})
	if err != nil {
		return nil, err
	}

	if arrangement != nil {
		arrangement.ApplyData(data)
		if err := uow.ArrangementRepository().Update(ctx, arrangement); err != nil {
			return nil, err
		}
		return arrangement, nil
	}

	arrangement = &entity.Arrangement{
		TranscriptId:        transcriptId,
		GeneratedDocuments:  map[entity.DocumentType]uuid.UUID{},
		DocGenerationStatus: entity.DocGenNotStarted,
		ApprovalStatus:      entity.ApprovalPending,
	}
	arrangement.ApplyData(data)
	if err := uow.ArrangementRepository().Create(ctx, arrangement); err != nil {
		return nil, err
	}
	return arrangement, nil
}

func (s *transcriptService) fail(ctx context.Context, uow unitofwork.UnitOfWork, transcriptId uuid.UUID, cause error) {
	s.logger.Error("TRANSCRIPT", "Processing failed", map[string]interface{}{
		"transcript_id": transcriptId.String(),
		"error":         cause.Error(),
	})
	if err := uow.TranscriptRepository().UpdateStatus(ctx, transcriptId, entity.TranscriptStatusError, cause.Error()); err != nil {
		s.logger.Error("TRANSCRIPT", "Failed to record processing error", map[string]interface{}{"error": err.Error()})
	}
}
