package handlers

import (
	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTeacherRequest struct {
	Name               string  `json:"name" validate:"required,min=1"`
	Department         string  `json:"department" validate:"required,min=1"`
	Subject            string  `json:"subject" validate:"required,min=1"`
	Bio                *string `json:"bio,omitempty"`
	ProfileImage       *string `json:"profile_image,omitempty"`
	OfficeHours        *string `json:"office_hours,omitempty"`
	ContactInfo        *string `json:"contact_info,omitempty"`
	TeachingPhilosophy *string `json:"teaching_philosophy,omitempty"`
}

type UpdateTeacherProfileRequest struct {
	Bio                *string `json:"bio,omitempty"`
	ProfileImage       *string `json:"profile_image,omitempty"`
	OfficeHours        *string `json:"office_hours,omitempty"`
	ContactInfo        *string `json:"contact_info,omitempty"`
	TeachingPhilosophy *string `json:"teaching_philosophy,omitempty"`
}

func ListTeachers(c *fiber.Ctx) error {
	var teachers []models.Teacher
	if err := database.DB.Order("name asc").Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get teachers"})
	}
	return c.JSON(teachers)
}

func GetTeacher(c *fiber.Ctx) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", c.Params("teacherId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(teacher)
}

func CreateTeacher(c *fiber.Ctx) error {
	var req CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	newTeacher := models.Teacher{
		Name:               req.Name,
		Department:         req.Department,
		Subject:            req.Subject,
		Bio:                req.Bio,
		ProfileImage:       req.ProfileImage,
		OfficeHours:        req.OfficeHours,
		ContactInfo:        req.ContactInfo,
		TeachingPhilosophy: req.TeachingPhilosophy,
	}
	if err := database.DB.Create(&newTeacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(fiber.StatusCreated).JSON(newTeacher)
}

func UpdateTeacherProfile(c *fiber.Ctx) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", c.Params("teacherId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req UpdateTeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	// Aggregate fields are owned by the aggregate maintainer; only profile
	// fields may be set here.
	updates := map[string]interface{}{}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if req.OfficeHours != nil {
		updates["office_hours"] = *req.OfficeHours
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}
	if req.TeachingPhilosophy != nil {
		updates["teaching_philosophy"] = *req.TeachingPhilosophy
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&teacher).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher profile"})
		}
	}

	return c.JSON(teacher)
}

func DeleteTeacher(c *fiber.Ctx) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", c.Params("teacherId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		feedbackIDs := tx.Model(&models.Feedback{}).Select("id").Where("teacher_id = ?", teacher.ID)
		if err := tx.Where("feedback_id IN (?)", feedbackIDs).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("feedback_id IN (?)", feedbackIDs).Delete(&models.FeedbackAnalysis{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", teacher.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", teacher.ID).Delete(&models.Doubt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", teacher.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", teacher.ID).Delete(&models.TeacherSummary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&teacher).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}

	return c.JSON(fiber.Map{"message": "Teacher deleted successfully"})
}
