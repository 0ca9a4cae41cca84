package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/gofiber/fiber/v2"
)

func DoubtRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	doubts := api.Group("/doubts", middleware.Protected())
	doubts.Get("/mine", middleware.StudentRequired(), handlers.GetMyDoubts)
	doubts.Get("/teacher/:teacherId", middleware.StaffRequired(), handlers.GetTeacherDoubts)
	doubts.Post("/:doubtId/answer", middleware.StaffRequired(), handlers.AnswerDoubt)
}
