package handlers

import (
	"errors"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetMyFavorites(c *fiber.Ctx) error {
	studentID := middleware.TokenUserID(c)

	var teacherIDs []string
	err := database.DB.Model(&models.Favorite{}).
		Where("student_id = ?", studentID).
		Pluck("teacher_id", &teacherIDs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get favorites"})
	}
	if teacherIDs == nil {
		teacherIDs = []string{}
	}
	return c.JSON(teacherIDs)
}

// AddFavorite is idempotent, favoriting an already-favorite teacher succeeds.
func AddFavorite(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	favorite := models.Favorite{
		StudentID: middleware.TokenUserID(c),
		TeacherID: teacherID,
	}
	if err := database.DB.Create(&favorite).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add favorite"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Teacher added to favorites"})
}

// RemoveFavorite is idempotent as well, removing a non-favorite is a no-op.
func RemoveFavorite(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	err = database.DB.
		Where("student_id = ? AND teacher_id = ?", middleware.TokenUserID(c), teacherID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favorite"})
	}
	return c.JSON(fiber.Map{"message": "Teacher removed from favorites"})
}
