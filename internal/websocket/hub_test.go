package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/pkg/compositor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	require.True(t, hub.join(c))
	return c
}

func waitConnected(t *testing.T, hub *Hub, userID uuid.UUID, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Connected(userID) == n }, time.Second, 5*time.Millisecond)
}

func TestHubSendReachesEveryDevice(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	phone := connect(t, hub, alice, sendBuffer)
	laptop := connect(t, hub, alice, sendBuffer)
	other := connect(t, hub, bob, sendBuffer)
	waitConnected(t, hub, alice, 2)
	waitConnected(t, hub, bob, 1)

	arrangementId := uuid.New()
	hub.NotifyProgress(alice, compositor.Progress{ArrangementId: arrangementId, DocumentType: entity.DocumentObituary, Status: "generating"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case data := <-c.Send:
			var msg struct {
				Type string `json:"type"`
				Data struct {
					ArrangementId uuid.UUID `json:"arrangementId"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, MessageDocumentProgress, msg.Type)
			assert.Equal(t, arrangementId, msg.Data.ArrangementId)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesOnce(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	c := connect(t, hub, user, sendBuffer)
	waitConnected(t, hub, user, 1)

	hub.leave(c)
	waitConnected(t, hub, user, 0)
	_, open := <-c.Send
	assert.False(t, open)

	// A second unregister for the same client must not panic.
	hub.leave(c)
	hub.Send(user, Message{Type: "noop"})
	assert.Equal(t, 0, hub.Connected(user))
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	connect(t, hub, user, 1)
	waitConnected(t, hub, user, 1)

	hub.Send(user, Message{Type: "first"})
	hub.Send(user, Message{Type: "second"})

	waitConnected(t, hub, user, 0)
}

func TestHubStoppedDoesNotBlockCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	user := uuid.New()
	slow := connect(t, hub, user, 1)
	waitConnected(t, hub, user, 1)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}

	finished := make(chan bool)
	go func() {
		// a full buffer schedules a drop that must not outlive the hub
		hub.Send(user, Message{Type: "first"})
		hub.Send(user, Message{Type: "second"})
		hub.leave(slow)
		finished <- hub.join(&Client{Hub: hub, UserID: user, Send: make(chan []byte, 1)})
	}()

	select {
	case joined := <-finished:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("caller blocked on a stopped hub")
	}
}
