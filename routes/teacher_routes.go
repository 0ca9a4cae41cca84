package routes

import (
	"github.com/edufeedback/edu_feedback/handlers"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/teachers", handlers.ListTeachers)
	api.Get("/teachers/:teacherId", handlers.GetTeacher)

	api.Post("/teachers", middleware.Protected(), middleware.AdminRequired(), handlers.CreateTeacher)
	api.Delete("/teachers/:teacherId", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteTeacher)
	api.Put("/teachers/:teacherId/profile", middleware.Protected(), middleware.StaffRequired(), handlers.UpdateTeacherProfile)

	api.Get("/teachers/:teacherId/report", middleware.Protected(), middleware.StaffRequired(), handlers.GenerateTeacherReport)
}
