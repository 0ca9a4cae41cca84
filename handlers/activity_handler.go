package handlers

import (
	"strconv"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultActivityLimit = 20

type ActivityItem struct {
	FeedbackID  string `json:"feedback_id"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	StudentName string `json:"student_name"`
	Rating      int    `json:"rating"`
	CreatedAt   string `json:"created_at"`
}

// GetRecentActivity returns the newest feedback entries joined with teacher
// names, for the landing page ticker.
func GetRecentActivity(c *fiber.Ctx) error {
	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a number between 1 and 100"})
		}
		limit = parsed
	}

	var feedbackList []models.Feedback
	if err := database.DB.Order("created_at desc").Limit(limit).Find(&feedbackList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get recent activity"})
	}

	var teachers []models.Teacher
	if err := database.DB.Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get recent activity"})
	}
	nameByID := make(map[uuid.UUID]string, len(teachers))
	for _, t := range teachers {
		nameByID[t.ID] = t.Name
	}

	items := make([]ActivityItem, 0, len(feedbackList))
	for _, fb := range feedbackList {
		name, ok := nameByID[fb.TeacherID]
		if !ok {
			name = "Unknown Teacher"
		}
		items = append(items, ActivityItem{
			FeedbackID:  fb.ID.String(),
			TeacherID:   fb.TeacherID.String(),
			TeacherName: name,
			StudentName: fb.StudentName,
			Rating:      fb.Rating,
			CreatedAt:   fb.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.JSON(items)
}
