package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/feedback/flagged", handlers.GetFlaggedFeedback)
	admin.Get("/doubts/overdue", handlers.GetOverdueDoubts)
	admin.Delete("/feedback/:feedbackId", handlers.AdminDeleteFeedback)
}
