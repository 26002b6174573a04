package handler

import (
	"go-expiry-tracker/internal/middleware"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WSUpgrade authenticates the ?token= query parameter before the upgrade.
// Browsers cannot set headers on websocket requests.
func WSUpgrade(auth middleware.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}

		user, err := auth.Authenticate(c.UserContext(), c.Query("token"))
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("view_all", user.HasPrivilege(model.PrivProductViewAll))
		return c.Next()
	}
}

// WSHandler registers the connection with the hub and keeps it open until
// the client goes away
func WSHandler(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		viewAll, _ := c.Locals("view_all").(bool)

		client := &ws.Client{Conn: c, UserID: userID, ViewAll: viewAll}
		if !hub.Join(client) {
			return
		}
		defer hub.Leave(client)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
