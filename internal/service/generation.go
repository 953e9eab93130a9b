package service

import (
	"context"

	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/unitofwork"
	adminEvents "funeral-docs-be/pkg/admin/events"
	"funeral-docs-be/pkg/admin/usage"
	"funeral-docs-be/pkg/compositor"

	"github.com/google/uuid"
)

// DocumentStore persists composed documents outside of any open transaction.
type DocumentStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentStore(uowFactory unitofwork.RepositoryFactory) *DocumentStore {
	return &DocumentStore{uowFactory: uowFactory}
}

func (s *DocumentStore) SaveDocument(ctx context.Context, doc *entity.Document) error {
	return s.uowFactory.NewUnitOfWork(ctx).DocumentRepository().Create(ctx, doc)
}

// generator runs the compositor for an arrangement and books the results:
// usage metrics, the generated-documents cache and the domain event.
type generator struct {
	compositor *compositor.Compositor
	tracker    *usage.Tracker
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

type generationResult struct {
	outcomes  []compositor.Outcome
	generated []dto.DocumentResponse
	failed    []dto.FailedDocument
	created   []entity.DocumentType
	lost      []entity.DocumentType
}

func (g *generator) run(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, arrangement *entity.Arrangement, transcript *entity.Transcript, types []entity.DocumentType, req dto.GenerationRequest) *generationResult {
	job := compositor.Job{
		ArrangementId:       arrangement.Id,
		UserId:              userId,
		Data:                arrangement.Data,
		Transcript:          transcript.Content,
		Enhanced:            req.Enhanced,
		StyleSpecifications: req.StyleSpecifications,
	}
	outcomes := g.compositor.Compose(ctx, job, types)

	res := &generationResult{
		outcomes:  outcomes,
		generated: []dto.DocumentResponse{},
		failed:    []dto.FailedDocument{},
	}
	if arrangement.GeneratedDocuments == nil {
		arrangement.GeneratedDocuments = map[entity.DocumentType]uuid.UUID{}
	}

	for _, o := range outcomes {
		if !o.Created() {
			msg := "document was not generated"
			if o.Err != nil {
				msg = o.Err.Error()
			}
			res.failed = append(res.failed, dto.FailedDocument{Type: string(o.Type), Error: msg})
			res.lost = append(res.lost, o.Type)
			continue
		}

		arrangement.GeneratedDocuments[o.Type] = o.Document.Id
		res.generated = append(res.generated, dto.NewDocumentResponse(o.Document, false))
		res.created = append(res.created, o.Type)

		if err := g.tracker.Record(ctx, uow, userId, entity.MetricDocumentGenerated, o.Document.Id); err != nil {
			g.logger.Warn("GENERATION", "Failed to record usage", map[string]interface{}{
				"document_id": o.Document.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	g.publisher.PublishDocumentsGenerated(ctx, userId, arrangement.Id, res.created, res.lost)
	return res
}

// status summarises a full generation pass.
func (r *generationResult) status() entity.DocGenerationStatus {
	switch {
	case len(r.lost) == 0:
		return entity.DocGenCompleted
	case len(r.created) == 0:
		return entity.DocGenFailed
	default:
		return entity.DocGenPartial
	}
}
