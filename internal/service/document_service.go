package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/unitofwork"
	adminEvents "funeral-docs-be/pkg/admin/events"
	"funeral-docs-be/pkg/admin/usage"
	"funeral-docs-be/pkg/compositor"
	"funeral-docs-be/pkg/lexical"
	"funeral-docs-be/pkg/markup"

	"github.com/google/uuid"
)

// DownloadFile is a decoded document body ready to send.
type DownloadFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type IDocumentService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.DocumentResponse, error)
	Get(ctx context.Context, userId, documentId uuid.UUID) (*dto.DocumentResponse, error)
	Update(ctx context.Context, userId, documentId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId, documentId uuid.UUID) error
	Download(ctx context.Context, userId, documentId uuid.UUID) (*DownloadFile, error)
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
	compositor *compositor.Compositor
	generator  *generator
	logger     logger.ILogger
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, comp *compositor.Compositor, tracker *usage.Tracker, publisher adminEvents.Publisher, log logger.ILogger) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
		compositor: comp,
		generator: &generator{
			compositor: comp,
			tracker:    tracker,
			publisher:  publisher,
			logger:     log,
		},
		logger: log,
	}
}

// Generate composes a single document type for an arrangement.
func (s *documentService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.DocumentResponse, error) {
	t, err := entity.ParseDocumentType(req.Type)
	if err != nil {
		return nil, apperror.ErrInvalidDocType
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrangement, transcript, err := ownedArrangement(ctx, uow, userId, req.ArrangementId)
	if err != nil {
		return nil, err
	}
	if !s.compositor.Ready() && !t.HasTemplateFallback() {
		return nil, apperror.ErrLLMNotConfigured
	}

	result := s.generator.run(ctx, uow, userId, arrangement, transcript, []entity.DocumentType{t}, dto.GenerationRequest{
		Enhanced:            req.Enhanced,
		StyleSpecifications: req.StyleSpecifications,
	})
	out := result.outcomes[0]
	if !out.Created() {
		return nil, out.Err
	}

	if err := uow.ArrangementRepository().Update(ctx, arrangement); err != nil {
		return nil, err
	}

	res := dto.NewDocumentResponse(out.Document, true)
	return &res, nil
}

func (s *documentService) Get(ctx context.Context, userId, documentId uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, _, err := ownedDocument(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}
	res := dto.NewDocumentResponse(doc, true)
	return &res, nil
}

// Update re-renders a document from edited text without calling the LLM.
func (s *documentService) Update(ctx context.Context, userId, documentId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, arrangement, err := ownedDocument(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	text := markup.Canonical(lexical.ToMarkup(req.PlainText))
	r := s.compositor.RenderText(ctx, doc.Type, arrangement.DeceasedName, text, req.Enhanced)
	doc.PlainText = text
	doc.Content = r.Content
	doc.ContentType = r.ContentType
	doc.Renderer = r.Renderer
	doc.Status = entity.DocumentStatusGenerated
	doc.Version++
	if title := strings.TrimSpace(req.Title); title != "" {
		doc.Title = title
	}

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("DOCUMENT", "Document updated", map[string]interface{}{
		"document_id": doc.Id.String(),
		"version":     doc.Version,
		"renderer":    doc.Renderer,
	})
	res := dto.NewDocumentResponse(doc, true)
	return &res, nil
}

// Delete removes exactly one row. The arrangement, its tasks and sibling
// documents stay as they are.
func (s *documentService) Delete(ctx context.Context, userId, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, _, err := ownedDocument(ctx, uow, userId, documentId)
	if err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return err
	}

	s.logger.Info("DOCUMENT", "Document deleted", map[string]interface{}{"document_id": doc.Id.String()})
	return nil
}

func (s *documentService) Download(ctx context.Context, userId, documentId uuid.UUID) (*DownloadFile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, arrangement, err := ownedDocument(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	body, err := base64.StdEncoding.DecodeString(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", doc.Id, err)
	}

	ext := ".pdf"
	if doc.ContentType != entity.ContentTypePDF {
		ext = ".txt"
	}
	return &DownloadFile{
		Filename:    downloadName(doc.Type, arrangement.DeceasedName) + ext,
		ContentType: doc.ContentType,
		Body:        body,
	}, nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9]+`)

func downloadName(t entity.DocumentType, deceased string) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(deceased, "_"), "_")
	if name == "" {
		return string(t)
	}
	return string(t) + "_" + name
}
