package handlers

import (
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetFeedbackTrends returns daily count and average rating buckets for one
// teacher, optionally windowed with startDate/endDate (YYYY-MM-DD).
func GetFeedbackTrends(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	query := database.DB.Model(&models.Feedback{}).Where("teacher_id = ?", teacherID)

	if startDate := c.Query("startDate"); startDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid startDate, expected YYYY-MM-DD"})
		}
		query = query.Where("created_at >= ?", start)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid endDate, expected YYYY-MM-DD"})
		}
		// Inclusive of the whole end day.
		query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
	}

	var rows []models.Feedback
	if err := query.Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get feedback trends"})
	}
	return c.JSON(services.BucketFeedbackByDate(rows))
}

func GetMonthlyFeedback(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var rows []models.Feedback
	if err := database.DB.Where("teacher_id = ?", teacherID).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get monthly feedback"})
	}
	return c.JSON(services.BucketFeedbackByMonth(rows))
}

type DepartmentStats struct {
	Department    string  `json:"department"`
	TeacherCount  int     `json:"teacherCount"`
	AvgRating     float64 `json:"avgRating"`
	TotalFeedback int     `json:"totalFeedback"`
}

// GetDepartmentStats aggregates the maintained per-teacher stats by
// department. Every teacher counts toward the department mean, so an unrated
// teacher's zero drags the average down.
func GetDepartmentStats(c *fiber.Ctx) error {
	var teachers []models.Teacher
	if err := database.DB.Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get department stats"})
	}

	type deptAgg struct {
		teacherCount  int
		ratingSum     float64
		totalFeedback int
	}
	byDept := make(map[string]*deptAgg)
	order := make([]string, 0)
	for _, t := range teachers {
		agg, ok := byDept[t.Department]
		if !ok {
			agg = &deptAgg{}
			byDept[t.Department] = agg
			order = append(order, t.Department)
		}
		agg.teacherCount++
		agg.totalFeedback += t.TotalFeedback
		agg.ratingSum += t.AverageRating
	}

	stats := make([]DepartmentStats, 0, len(byDept))
	for _, dept := range order {
		agg := byDept[dept]
		stats = append(stats, DepartmentStats{
			Department:    dept,
			TeacherCount:  agg.teacherCount,
			AvgRating:     agg.ratingSum / float64(agg.teacherCount),
			TotalFeedback: agg.totalFeedback,
		})
	}
	return c.JSON(stats)
}
