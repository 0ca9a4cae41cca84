package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/gofiber/fiber/v2"
)

func AnalyticsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	analytics := api.Group("/analytics")
	analytics.Get("/teacher/:teacherId/trends", handlers.GetFeedbackTrends)
	analytics.Get("/teacher/:teacherId/monthly", handlers.GetMonthlyFeedback)
	analytics.Get("/departments/comparison", handlers.GetDepartmentStats)

	leaderboard := api.Group("/leaderboard")
	leaderboard.Get("/top-rated", handlers.GetTopRatedTeachers)
	leaderboard.Get("/most-feedback", handlers.GetMostFeedbackTeachers)
	leaderboard.Get("/most-improved", handlers.GetMostImprovedTeachers)
}
