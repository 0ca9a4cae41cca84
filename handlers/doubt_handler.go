package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerDoubtRequest struct {
	Answer string `json:"answer" validate:"required"`
}

func GetMyDoubts(c *fiber.Ctx) error {
	studentID := middleware.TokenUserID(c)

	var doubts []models.Doubt
	if err := database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&doubts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get doubts"})
	}
	return c.JSON(doubts)
}

func GetTeacherDoubts(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var doubts []models.Doubt
	if err := database.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&doubts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get doubts"})
	}
	return c.JSON(doubts)
}

// AnswerDoubt records the answer and closes the doubt in one step. A doubt
// can only be answered once.
func AnswerDoubt(c *fiber.Ctx) error {
	doubtID, err := uuid.Parse(c.Params("doubtId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Doubt not found"})
	}

	var req AnswerDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Answer is required"})
	}

	var doubt models.Doubt
	if err := database.DB.First(&doubt, "id = ?", doubtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Doubt not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to answer doubt"})
	}

	if doubt.Status == models.DoubtStatusAnswered {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This doubt has already been answered"})
	}

	now := time.Now()
	doubt.Answer = &answer
	doubt.Status = models.DoubtStatusAnswered
	doubt.AnsweredAt = &now
	if err := database.DB.Save(&doubt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to answer doubt"})
	}
	return c.JSON(doubt)
}
