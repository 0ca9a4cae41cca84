package handlers

import (
	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GenerateTeacherReport renders a PDF feedback report for a teacher and
// returns the uploaded document's URL.
func GenerateTeacherReport(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var rows []models.Feedback
	if err := database.DB.Where("teacher_id = ?", teacherID).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	reportURL, err := services.GenerateTeacherReport(teacher, services.BucketFeedbackByMonth(rows))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	return c.JSON(fiber.Map{"url": reportURL})
}
