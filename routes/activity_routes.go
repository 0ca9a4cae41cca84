package routes

import (
	ws "github.com/edufeedback/edu_feedback/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ActivityRoutes(app *fiber.App) {
	app.Use("/ws/activity", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/activity", websocket.New(ws.ActivityHandler))
}
