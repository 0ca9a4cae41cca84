package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlaggedFeedbackEntry struct {
	models.Feedback
	TeacherName string `json:"teacher_name"`
	Department  string `json:"department"`
}

// GetFlaggedFeedback rescans all stored comments against the current abuse
// list. Rescanning (rather than storing a flag) means list changes apply
// retroactively.
func GetFlaggedFeedback(c *fiber.Ctx) error {
	var feedbackList []models.Feedback
	if err := database.DB.Order("created_at desc").Find(&feedbackList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get flagged feedback"})
	}

	var teachers []models.Teacher
	if err := database.DB.Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get flagged feedback"})
	}
	teacherByID := make(map[uuid.UUID]models.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID] = t
	}

	flagged := make([]FlaggedFeedbackEntry, 0)
	for _, fb := range feedbackList {
		if fb.Comment == nil || !services.Abuse.Matches(*fb.Comment) {
			continue
		}
		entry := FlaggedFeedbackEntry{Feedback: fb, TeacherName: "Unknown Teacher"}
		if t, ok := teacherByID[fb.TeacherID]; ok {
			entry.TeacherName = t.Name
			entry.Department = t.Department
		}
		flagged = append(flagged, entry)
	}
	return c.JSON(flagged)
}

type OverdueDoubtEntry struct {
	models.Doubt
	TeacherName string `json:"teacher_name"`
	Department  string `json:"department"`
}

// GetOverdueDoubts lists open doubts older than the SLA window with the
// teacher they were asked about, newest first.
func GetOverdueDoubts(c *fiber.Ctx) error {
	days := 5
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be a positive number"})
		}
		days = parsed
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var doubts []models.Doubt
	err := database.DB.
		Where("status = ? AND created_at <= ?", models.DoubtStatusOpen, cutoff).
		Order("created_at desc").
		Find(&doubts).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get overdue doubts"})
	}

	var teachers []models.Teacher
	if err := database.DB.Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get overdue doubts"})
	}
	teacherByID := make(map[uuid.UUID]models.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID] = t
	}

	entries := make([]OverdueDoubtEntry, 0, len(doubts))
	for _, d := range doubts {
		entry := OverdueDoubtEntry{Doubt: d, TeacherName: "Unknown Teacher"}
		if t, ok := teacherByID[d.TeacherID]; ok {
			entry.TeacherName = t.Name
			entry.Department = t.Department
		}
		entries = append(entries, entry)
	}
	return c.JSON(entries)
}

// AdminDeleteFeedback removes a feedback entry with its replies and AI
// analysis, then rebuilds the teacher's aggregates in the same transaction.
func AdminDeleteFeedback(c *fiber.Ctx) error {
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var feedback models.Feedback
		if err := tx.First(&feedback, "id = ?", feedbackID).Error; err != nil {
			return err
		}

		if err := tx.Where("feedback_id = ?", feedbackID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("feedback_id = ?", feedbackID).Delete(&models.FeedbackAnalysis{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&feedback).Error; err != nil {
			return err
		}

		return services.RecalculateTeacherStats(tx, feedback.TeacherID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete feedback"})
	}
	return c.JSON(fiber.Map{"message": "Feedback deleted"})
}
