package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentContract      DocumentType = "contract"
	DocumentSummary       DocumentType = "summary"
	DocumentObituary      DocumentType = "obituary"
	DocumentTasks         DocumentType = "tasks"
	DocumentArrangerTasks DocumentType = "arranger_tasks"
	DocumentDeathCert     DocumentType = "death_cert"
)

// AllDocumentTypes is the fixed generation order.
var AllDocumentTypes = []DocumentType{
	DocumentContract,
	DocumentSummary,
	DocumentObituary,
	DocumentTasks,
	DocumentArrangerTasks,
	DocumentDeathCert,
}

func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	switch t {
	case DocumentContract, DocumentSummary, DocumentObituary, DocumentTasks, DocumentArrangerTasks, DocumentDeathCert:
		return t, nil
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

func (t DocumentType) Title() string {
	switch t {
	case DocumentContract:
		return "Funeral Service Contract"
	case DocumentSummary:
		return "Arrangement Summary"
	case DocumentObituary:
		return "Obituary"
	case DocumentTasks:
		return "Funeral Director Tasks"
	case DocumentArrangerTasks:
		return "Arranger Tasks"
	case DocumentDeathCert:
		return "Death Certificate Worksheet"
	}
	panic(fmt.Sprintf("entity: unhandled document type %q", string(t)))
}

// HasTemplateFallback reports whether the type can be built from structured
// data alone when the LLM is unavailable.
func (t DocumentType) HasTemplateFallback() bool {
	switch t {
	case DocumentTasks, DocumentArrangerTasks:
		return true
	case DocumentContract, DocumentSummary, DocumentObituary, DocumentDeathCert:
		return false
	}
	panic(fmt.Sprintf("entity: unhandled document type %q", string(t)))
}

type DocumentStatus string

const (
	DocumentStatusGenerated DocumentStatus = "generated"
	DocumentStatusFailed    DocumentStatus = "failed"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

type Document struct {
	Id            uuid.UUID
	ArrangementId uuid.UUID
	Type          DocumentType
	Title         string
	// Content is base64 of the rendered bytes, or of the raw text when
	// rendering failed.
	Content     string
	ContentType string
	PlainText   string
	Status      DocumentStatus
	Renderer    string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
