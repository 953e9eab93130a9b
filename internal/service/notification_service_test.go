package service

import (
	"context"
	"testing"
	"time"

	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/websocket"
	"funeral-docs-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	userID uuid.UUID
	msg    websocket.Message
}

type recordingDelivery struct {
	sent []sentMessage
}

func (d *recordingDelivery) Send(userID uuid.UUID, msg websocket.Message) {
	d.sent = append(d.sent, sentMessage{userID: userID, msg: msg})
}

func TestNotificationHandleEvent(t *testing.T) {
	user := uuid.New()
	tests := []struct {
		name     string
		event    events.BaseEvent
		wantType string
	}{
		{
			name:     "documents generated",
			event:    events.BaseEvent{Type: events.DocumentsGenerated, Data: map[string]interface{}{"user_id": user.String(), "generated": []string{"contract"}}},
			wantType: websocket.MessageDocumentsGenerated,
		},
		{
			name:     "role changed",
			event:    events.BaseEvent{Type: events.UserRoleChanged, Data: map[string]interface{}{"user_id": user.String(), "new_role": "premium"}},
			wantType: "role_changed",
		},
		{
			name:  "unrelated event",
			event: events.BaseEvent{Type: events.TranscriptProcessed, Data: map[string]interface{}{"user_id": user.String()}},
		},
		{
			name:  "missing user",
			event: events.BaseEvent{Type: events.DocumentsGenerated, Data: map[string]interface{}{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delivery := &recordingDelivery{}
			svc := NewNotificationService(nil, delivery, logger.NewNopLogger())

			tt.event.OccurredAt = time.Now()
			require.NoError(t, svc.HandleEvent(context.Background(), tt.event))

			if tt.wantType == "" {
				assert.Empty(t, delivery.sent)
				return
			}
			require.Len(t, delivery.sent, 1)
			assert.Equal(t, user, delivery.sent[0].userID)
			assert.Equal(t, tt.wantType, delivery.sent[0].msg.Type)
			assert.Equal(t, tt.event.Data, delivery.sent[0].msg.Data)
		})
	}
}
