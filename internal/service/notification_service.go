package service

import (
	"context"
	"fmt"

	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/websocket"
	"funeral-docs-be/pkg/events"
	pktNats "funeral-docs-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates to a user.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, msg websocket.Message)
}

// NotificationService forwards bus events to the owner's open sockets, so
// clients connected to any instance hear about finished generations.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start subscribes to the events users are told about.
func (s *NotificationService) Start(ctx context.Context) error {
	subscriptions := map[string]string{
		events.DocumentsGenerated: "notify-documents-generated",
		events.UserRoleChanged:    "notify-role-changed",
	}
	for eventType, durable := range subscriptions {
		if err := s.subscriber.Subscribe(ctx, eventType, durable, s.HandleEvent); err != nil {
			return fmt.Errorf("subscribe %s: %w", eventType, err)
		}
	}
	s.logger.Info("NotificationService", "Notification service started", nil)
	return nil
}

func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	raw, _ := payload["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		// Redelivery would not help; drop it.
		s.logger.Warn("NotificationService", "Event without user", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	var msgType string
	switch event.EventType() {
	case events.DocumentsGenerated:
		msgType = websocket.MessageDocumentsGenerated
	case events.UserRoleChanged:
		msgType = "role_changed"
	default:
		return nil
	}

	s.delivery.Send(userID, websocket.Message{Type: msgType, Data: payload})
	s.logger.Debug("NotificationService", "Delivered event", map[string]interface{}{
		"type":    event.EventType(),
		"user_id": userID.String(),
	})
	return nil
}
