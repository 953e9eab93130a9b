package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"
	adminEvents "funeral-docs-be/pkg/admin/events"
	"funeral-docs-be/pkg/admin/usage"
	"funeral-docs-be/pkg/compositor"

	"github.com/google/uuid"
)

type IArrangementService interface {
	GetByTranscript(ctx context.Context, userId, transcriptId uuid.UUID) (*dto.ArrangementResponse, error)
	UpdateByTranscript(ctx context.Context, userId, transcriptId uuid.UUID, req *dto.UpdateArrangementRequest) (*dto.ArrangementResponse, error)
	Approve(ctx context.Context, userId, arrangementId uuid.UUID, req dto.GenerationRequest) (*dto.GenerationResponse, error)
	RegenerateAll(ctx context.Context, userId, arrangementId uuid.UUID, req dto.GenerationRequest) (*dto.GenerationResponse, error)
	ListDocuments(ctx context.Context, userId, arrangementId uuid.UUID) ([]dto.DocumentResponse, error)
	DeleteDocuments(ctx context.Context, userId, arrangementId uuid.UUID, req *dto.BulkDeleteDocumentsRequest) (*dto.BulkDeleteResponse, error)
}

type arrangementService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  *generator
	logger     logger.ILogger
	now        func() time.Time
}

func NewArrangementService(uowFactory unitofwork.RepositoryFactory, comp *compositor.Compositor, tracker *usage.Tracker, publisher adminEvents.Publisher, log logger.ILogger) IArrangementService {
	return &arrangementService{
		uowFactory: uowFactory,
		generator: &generator{
			compositor: comp,
			tracker:    tracker,
			publisher:  publisher,
			logger:     log,
		},
		logger: log,
		now:    time.Now,
	}
}

func (s *arrangementService) GetByTranscript(ctx context.Context, userId, transcriptId uuid.UUID) (*dto.ArrangementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrangement, _, err := arrangementForTranscript(ctx, uow, userId, transcriptId)
	if err != nil {
		return nil, err
	}
	res := dto.NewArrangementResponse(arrangement)
	return &res, nil
}

// UpdateByTranscript replaces the reviewed data. Approval state is untouched.
func (s *arrangementService) UpdateByTranscript(ctx context.Context, userId, transcriptId uuid.UUID, req *dto.UpdateArrangementRequest) (*dto.ArrangementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrangement, _, err := arrangementForTranscript(ctx, uow, userId, transcriptId)
	if err != nil {
		return nil, err
	}

	arrangement.ApplyData(*req.ExtractedData)
	if err := uow.ArrangementRepository().Update(ctx, arrangement); err != nil {
		return nil, err
	}

	res := dto.NewArrangementResponse(arrangement)
	return &res, nil
}

func (s *arrangementService) Approve(ctx context.Context, userId, arrangementId uuid.UUID, req dto.GenerationRequest) (*dto.GenerationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrangement, transcript, err := ownedArrangement(ctx, uow, userId, arrangementId)
	if err != nil {
		return nil, err
	}
	if !s.generator.compositor.Ready() {
		return nil, apperror.ErrLLMNotConfigured
	}

	now := s.now()
	arrangement.ApprovalStatus = entity.ApprovalApproved
	arrangement.ApprovedAt = &now
	arrangement.DocGenerationStatus = entity.DocGenRunning
	if err := uow.ArrangementRepository().Update(ctx, arrangement); err != nil {
		return nil, err
	}

	s.logger.Info("ARRANGEMENT", "Arrangement approved", map[string]interface{}{
		"arrangement_id": arrangement.Id.String(),
		"user_id":        userId.String(),
	})

	result := s.generator.run(ctx, uow, userId, arrangement, transcript, entity.AllDocumentTypes, req)

	if err := uow.FuneralTaskRepository().Create(ctx, followUpTask(arrangement, result)); err != nil {
		s.logger.Error("ARRANGEMENT", "Failed to create follow-up task", map[string]interface{}{
			"arrangement_id": arrangement.Id.String(),
			"error":          err.Error(),
		})
	}

	return s.finish(ctx, uow, arrangement, result)
}

// RegenerateAll composes all six documents again. New rows are inserted next
// to the old ones and approval state is left alone.
func (s *arrangementService) RegenerateAll(ctx context.Context, userId, arrangementId uuid.UUID, req dto.GenerationRequest) (*dto.GenerationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrangement, transcript, err := ownedArrangement(ctx, uow, userId, arrangementId)
	if err != nil {
		return nil, err
	}
	if !s.generator.compositor.Ready() {
		return nil, apperror.ErrLLMNotConfigured
	}

	arrangement.DocGenerationStatus = entity.DocGenRunning
	if err := uow.ArrangementRepository().Update(ctx, arrangement); err != nil {
		return nil, err
	}

	result := s.generator.run(ctx, uow, userId, arrangement, transcript, entity.AllDocumentTypes, req)
	return s.finish(ctx, uow, arrangement, result)
}

func (s *arrangementService) finish(ctx context.Context, uow unitofwork.UnitOfWork, arrangement *entity.Arrangement, result *generationResult) (*dto.GenerationResponse, error) {
	arrangement.DocGenerationStatus = result.status()
	if err := uow.ArrangementRepository().Update(ctx, arrangement); err != nil {
		return nil, err
	}

	s.logger.Info("ARRANGEMENT", "Document generation finished", map[string]interface{}{
		"arrangement_id": arrangement.Id.String(),
		"generated":      len(result.generated),
		"failed":         len(result.failed),
		"status":         string(arrangement.DocGenerationStatus),
	})

	return &dto.GenerationResponse{
		Arrangement:        dto.NewArrangementResponse(arrangement),
		GeneratedDocuments: result.generated,
		FailedDocuments:    result.failed,
	}, nil
}

func (s *arrangementService) ListDocuments(ctx context.Context, userId, arrangementId uuid.UUID) ([]dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, _, err := ownedArrangement(ctx, uow, userId, arrangementId); err != nil {
		return nil, err
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByArrangementID{ArrangementID: arrangementId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = dto.NewDocumentResponse(d, false)
	}
	return res, nil
}

// DeleteDocuments removes documents of one arrangement. The arrangement row
// and its tasks are not touched.
func (s *arrangementService) DeleteDocuments(ctx context.Context, userId, arrangementId uuid.UUID, req *dto.BulkDeleteDocumentsRequest) (*dto.BulkDeleteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, _, err := ownedArrangement(ctx, uow, userId, arrangementId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{specification.ByArrangementID{ArrangementID: arrangementId}}
	if len(req.Ids) > 0 {
		specs = append(specs, specification.ByIDs{IDs: req.Ids})
	}
	if req.Type != "" {
		t, err := entity.ParseDocumentType(req.Type)
		if err != nil {
			return nil, apperror.ErrInvalidDocType
		}
		specs = append(specs, specification.ByDocumentType{Type: string(t)})
	}

	deleted, err := uow.DocumentRepository().DeleteWhere(ctx, specs...)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ARRANGEMENT", "Documents deleted", map[string]interface{}{
		"arrangement_id": arrangementId.String(),
		"deleted":        deleted,
	})
	return &dto.BulkDeleteResponse{Deleted: deleted}, nil
}

func followUpTask(arrangement *entity.Arrangement, result *generationResult) *entity.FuneralTask {
	name := arrangement.DeceasedName
	if name == "" {
		name = "arrangement"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Review the %d generated documents", len(result.created))
	if len(result.lost) > 0 {
		names := make([]string, len(result.lost))
		for i, t := range result.lost {
			names[i] = t.Title()
		}
		fmt.Fprintf(&b, " and regenerate the missing ones: %s", strings.Join(names, ", "))
	}
	b.WriteString(".")
	if arrangement.ServiceDate != "" {
		fmt.Fprintf(&b, " Service date: %s.", arrangement.ServiceDate)
	}

	priority := entity.TaskPriorityMedium
	if len(result.lost) > 0 {
		priority = entity.TaskPriorityHigh
	}

	return &entity.FuneralTask{
		ArrangementId: arrangement.Id,
		Title:         "Follow up on documents for " + name,
		Description:   b.String(),
		Priority:      priority,
	}
}
