package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/gofiber/fiber/v2"
)

func FeedbackRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Kiosk submissions are deliberately unauthenticated.
	api.Post("/qr-feedback/:teacherId", handlers.SubmitQRFeedback)

	api.Get("/feedback/teacher/:teacherId", handlers.GetTeacherFeedback)
	api.Get("/feedback/:feedbackId/replies", handlers.GetFeedbackReplies)
	api.Get("/activity/recent", handlers.GetRecentActivity)

	feedback := api.Group("/feedback", middleware.Protected())
	feedback.Post("", middleware.StudentRequired(), handlers.SubmitFeedback)
	feedback.Get("/my-submissions", middleware.StudentRequired(), handlers.GetMySubmissions)
	feedback.Get("/my", middleware.StudentRequired(), handlers.GetMyFeedback)
	feedback.Get("/reminder-status", middleware.StudentRequired(), handlers.GetReminderStatus)

	feedback.Post("/:feedbackId/replies", handlers.CreateReply)

	api.Delete("/replies/:replyId", middleware.Protected(), handlers.DeleteReply)
}
