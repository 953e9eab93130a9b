package websocket

import (
	"funeral-docs-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs runs one connection until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, sendBuffer)}
	if !hub.join(client) {
		return
	}

	go client.writePump()
	client.readPump()
}

// RegisterRoutes mounts GET /ws. The token travels as a query parameter
// because browsers cannot set headers on upgrade requests.
func RegisterRoutes(r fiber.Router, hub *Hub, jwtSecret string) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	r.Get("/ws", serverutils.JwtMiddleware(jwtSecret), func(c *fiber.Ctx) error {
		userID, err := serverutils.CurrentUserID(c)
		if err != nil {
			return err
		}
		c.Locals("ws_user_id", userID)
		return c.Next()
	}, websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("ws_user_id").(uuid.UUID)
		ServeWs(hub, conn, userID)
	}))
}
