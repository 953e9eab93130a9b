package events

import (
	"context"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	pkgEvents "funeral-docs-be/pkg/events"
	pktNats "funeral-docs-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher emits the domain events. Publishing is best effort: failures
// are logged and never returned to the caller.
type Publisher interface {
	PublishTranscriptProcessed(ctx context.Context, userId, transcriptId, arrangementId uuid.UUID, deceasedName string)
	PublishDocumentsGenerated(ctx context.Context, userId, arrangementId uuid.UUID, generated, failed []entity.DocumentType)
	PublishRoleChanged(ctx context.Context, userId uuid.UUID, email string, oldRole, newRole entity.UserRole)
}

// NatsPublisher implements Publisher using NATS. A nil NATS publisher
// turns every call into a no-op.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (p *NatsPublisher) PublishTranscriptProcessed(ctx context.Context, userId, transcriptId, arrangementId uuid.UUID, deceasedName string) {
	p.publish(ctx, pkgEvents.TranscriptProcessed, map[string]interface{}{
		"user_id":        userId.String(),
		"transcript_id":  transcriptId.String(),
		"arrangement_id": arrangementId.String(),
		"deceased_name":  deceasedName,
	})
}

func (p *NatsPublisher) PublishDocumentsGenerated(ctx context.Context, userId, arrangementId uuid.UUID, generated, failed []entity.DocumentType) {
	p.publish(ctx, pkgEvents.DocumentsGenerated, map[string]interface{}{
		"user_id":        userId.String(),
		"arrangement_id": arrangementId.String(),
		"generated":      typeNames(generated),
		"failed":         typeNames(failed),
	})
}

func (p *NatsPublisher) PublishRoleChanged(ctx context.Context, userId uuid.UUID, email string, oldRole, newRole entity.UserRole) {
	p.publish(ctx, pkgEvents.UserRoleChanged, map[string]interface{}{
		"user_id":  userId.String(),
		"email":    email,
		"old_role": string(oldRole),
		"new_role": string(newRole),
	})
}

func typeNames(types []entity.DocumentType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
