// Package compositor generates the arrangement documents: prompt, LLM draft,
// markup render, persist. Types are composed one after another and each
// produces its own Outcome, so one failure never stops the rest.
package compositor

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/pkg/llm"
	"funeral-docs-be/pkg/markup"
	"funeral-docs-be/pkg/metrics"
	"funeral-docs-be/pkg/render"

	"github.com/google/uuid"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxTokens = 2000

	// RendererNone marks documents whose content is the raw text.
	RendererNone = "none"
)

type Kind string

const (
	KindGenerated        Kind = "generated"
	KindFallbackTemplate Kind = "fallback_template"
	KindFallbackText     Kind = "fallback_text"
	KindFailed           Kind = "failed"
)

// Job is everything needed to compose documents for one arrangement.
type Job struct {
	ArrangementId       uuid.UUID
	UserId              uuid.UUID
	Data                entity.ArrangementData
	Transcript          string
	Enhanced            bool
	StyleSpecifications string
}

type Outcome struct {
	Type     entity.DocumentType
	Kind     Kind
	Document *entity.Document
	Err      error
}

// Created reports whether the outcome persisted a document.
func (o Outcome) Created() bool {
	return o.Kind != KindFailed && o.Document != nil
}

// Store persists composed documents.
type Store interface {
	SaveDocument(ctx context.Context, doc *entity.Document) error
}

// Progress is pushed to the owner while documents are composed.
type Progress struct {
	ArrangementId uuid.UUID           `json:"arrangementId"`
	DocumentType  entity.DocumentType `json:"documentType"`
	Status        string              `json:"status"`
}

type Notifier interface {
	NotifyProgress(userId uuid.UUID, p Progress)
}

type Config struct {
	Timeout   time.Duration
	MaxTokens int
}

type Compositor struct {
	llm       llm.LLMProvider
	renderers *render.Registry
	store     Store
	notifier  Notifier
	logger    logger.ILogger
	timeout   time.Duration
	maxTokens int
	now       func() time.Time
}

func New(provider llm.LLMProvider, renderers *render.Registry, store Store, log logger.ILogger, cfg Config) *Compositor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &Compositor{
		llm:       provider,
		renderers: renderers,
		store:     store,
		logger:    log,
		timeout:   cfg.Timeout,
		maxTokens: cfg.MaxTokens,
		now:       time.Now,
	}
}

// Ready reports whether an LLM is available for drafting.
func (c *Compositor) Ready() bool {
	return c.llm != nil
}

// WithNotifier sets the progress sink. A nil notifier disables progress.
func (c *Compositor) WithNotifier(n Notifier) *Compositor {
	c.notifier = n
	return c
}

// Compose runs types in order and returns one outcome per type.
func (c *Compositor) Compose(ctx context.Context, job Job, types []entity.DocumentType) []Outcome {
	outcomes := make([]Outcome, 0, len(types))
	for _, t := range types {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Type: t, Kind: KindFailed, Err: err})
			continue
		}

		c.notify(job, t, "generating")
		out := c.composeOne(ctx, job, t)
		c.notify(job, t, string(out.Kind))
		metrics.DocumentOutcomes.WithLabelValues(string(t), string(out.Kind)).Inc()

		if out.Err != nil {
			c.logger.Warn("COMPOSITOR", "Document not generated", map[string]interface{}{
				"arrangement_id": job.ArrangementId,
				"type":           t,
				"kind":           out.Kind,
				"error":          out.Err.Error(),
			})
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (c *Compositor) composeOne(ctx context.Context, job Job, t entity.DocumentType) Outcome {
	kind := KindGenerated

	text, err := c.draft(ctx, BuildPrompt(t, job))
	if err != nil {
		fallback, ok := Template(t, job.Data)
		if !ok {
			return Outcome{Type: t, Kind: KindFailed, Err: fmt.Errorf("draft %s: %w", t, err)}
		}
		c.logger.Info("COMPOSITOR", "Using template fallback", map[string]interface{}{
			"arrangement_id": job.ArrangementId,
			"type":           t,
			"reason":         err.Error(),
		})
		text, kind = fallback, KindFallbackTemplate
	}

	r := c.RenderText(ctx, t, job.Data.Deceased.FullName, text, job.Enhanced)
	if r.Err != nil && kind == KindGenerated {
		kind = KindFallbackText
	}

	doc := &entity.Document{
		ArrangementId: job.ArrangementId,
		Type:          t,
		Title:         t.Title(),
		Content:       r.Content,
		ContentType:   r.ContentType,
		PlainText:     markup.Canonical(text),
		Status:        entity.DocumentStatusGenerated,
		Renderer:      r.Renderer,
		Version:       1,
	}
	if err := c.store.SaveDocument(ctx, doc); err != nil {
		return Outcome{Type: t, Kind: KindFailed, Err: fmt.Errorf("save %s: %w", t, err)}
	}
	return Outcome{Type: t, Kind: kind, Document: doc}
}

// draft races the LLM call against the timeout and cancels the call if the
// timer wins.
func (c *Compositor) draft(ctx context.Context, prompt string) (string, error) {
	if c.llm == nil {
		return "", apperror.ErrLLMNotConfigured
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	start := time.Now()

	go func() {
		text, err := c.llm.Chat(callCtx, []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		}, llm.WithMaxTokens(c.maxTokens))
		done <- reply{text: text, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			metrics.Since(metrics.LLMLatency, start, "document", "error")
			return "", r.err
		}
		text := strings.TrimSpace(r.text)
		if text == "" {
			metrics.Since(metrics.LLMLatency, start, "document", "empty")
			return "", llm.ErrEmptyResponse
		}
		metrics.Since(metrics.LLMLatency, start, "document", "ok")
		return stripFence(text), nil
	case <-timer.C:
		metrics.Since(metrics.LLMLatency, start, "document", "timeout")
		return "", apperror.ErrLLMTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Rendered is the stored form of a document body.
type Rendered struct {
	Content     string
	ContentType string
	Renderer    string
	Err         error
}

// RenderText renders text without the LLM. When rendering fails the raw
// text is kept as the content so the document is still usable.
func (c *Compositor) RenderText(ctx context.Context, t entity.DocumentType, subject, text string, enhanced bool) Rendered {
	r := c.renderers.Select(enhanced)
	meta := render.Meta{Title: t.Title(), Subject: subject, Date: c.now()}

	start := time.Now()
	pdf, err := render.FromText(ctx, r, meta, text)
	if err != nil {
		metrics.Since(metrics.RenderLatency, start, r.Name(), "error")
		c.logger.Warn("COMPOSITOR", "Render failed, storing text", map[string]interface{}{
			"type":     t,
			"renderer": r.Name(),
			"error":    err.Error(),
		})
		return Rendered{
			Content:     base64.StdEncoding.EncodeToString([]byte(text)),
			ContentType: entity.ContentTypeText,
			Renderer:    RendererNone,
			Err:         err,
		}
	}
	metrics.Since(metrics.RenderLatency, start, r.Name(), "ok")
	return Rendered{
		Content:     base64.StdEncoding.EncodeToString(pdf),
		ContentType: entity.ContentTypePDF,
		Renderer:    r.Name(),
	}
}

func (c *Compositor) notify(job Job, t entity.DocumentType, status string) {
	if c.notifier == nil || job.UserId == uuid.Nil {
		return
	}
	c.notifier.NotifyProgress(job.UserId, Progress{ArrangementId: job.ArrangementId, DocumentType: t, Status: status})
}

// Failed returns the types of failed outcomes, with their errors.
func Failed(outcomes []Outcome) map[entity.DocumentType]error {
	failed := map[entity.DocumentType]error{}
	for _, o := range outcomes {
		if o.Kind == KindFailed {
			failed[o.Type] = o.Err
		}
	}
	return failed
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
