package handlers

import (
	"errors"
	"strings"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

func GetFeedbackReplies(c *fiber.Ctx) error {
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	var replies []models.Reply
	if err := database.DB.Where("feedback_id = ?", feedbackID).Order("created_at asc").Find(&replies).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get replies"})
	}
	return c.JSON(replies)
}

func CreateReply(c *fiber.Ctx) error {
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	var req CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Reply content is required"})
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	reply := models.Reply{
		FeedbackID: feedbackID,
		UserID:     middleware.TokenUserID(c),
		UserName:   middleware.TokenUserName(c),
		UserRole:   middleware.TokenUserRole(c),
		Content:    content,
	}
	if err := database.DB.Create(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create reply"})
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func DeleteReply(c *fiber.Ctx) error {
	replyID, err := uuid.Parse(c.Params("replyId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reply not found"})
	}

	var reply models.Reply
	if err := database.DB.First(&reply, "id = ?", replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reply not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reply"})
	}

	// Authors may delete their own replies; admins may delete any.
	if reply.UserID != middleware.TokenUserID(c) && middleware.TokenUserRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own replies"})
	}

	if err := database.DB.Delete(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reply"})
	}
	return c.JSON(fiber.Map{"message": "Reply deleted"})
}
