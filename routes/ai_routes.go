package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/gofiber/fiber/v2"
)

func AIRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	ai := api.Group("/ai", middleware.Protected())
	ai.Post("/analyze-feedback/:feedbackId", handlers.AnalyzeFeedback)
	ai.Get("/feedback-analysis/:feedbackId", handlers.GetFeedbackAnalysis)
	ai.Post("/teacher-summary/:teacherId", handlers.GenerateTeacherSummary)
	ai.Get("/teacher-summary/:teacherId", handlers.GetTeacherSummary)
	ai.Post("/recommend", handlers.RecommendTeachers)
	ai.Post("/improve-feedback", handlers.ImproveFeedback)
	ai.Post("/chat", handlers.Chat)
	ai.Post("/reply-templates/:feedbackId", middleware.StaffRequired(), handlers.GenerateReplyTemplates)
}
