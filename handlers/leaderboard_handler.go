package handlers

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	mostImprovedMinFeedback = 3
	defaultLeaderboardLimit = 10
)

func leaderboardLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLeaderboardLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive number")
	}
	return limit, nil
}

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	TeacherID     string  `json:"teacher_id"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Subject       string  `json:"subject"`
	AverageRating float64 `json:"average_rating"`
	TotalFeedback int     `json:"total_feedback"`
}

type ImprovedEntry struct {
	LeaderboardEntry
	Improvement float64 `json:"improvement"`
}

func leaderboardEntry(rank int, t models.Teacher) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:          rank,
		TeacherID:     t.ID.String(),
		Name:          t.Name,
		Department:    t.Department,
		Subject:       t.Subject,
		AverageRating: t.AverageRating,
		TotalFeedback: t.TotalFeedback,
	}
}

// GetTopRatedTeachers ranks rated teachers by average rating, breaking ties
// by feedback volume. Teachers with no feedback are left off the board.
func GetTopRatedTeachers(c *fiber.Ctx) error {
	limit, err := leaderboardLimit(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var teachers []models.Teacher
	err = database.DB.
		Where("average_rating > 0").
		Order("average_rating desc").
		Order("total_feedback desc").
		Limit(limit).
		Find(&teachers).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get leaderboard"})
	}

	board := make([]LeaderboardEntry, 0, len(teachers))
	for i, t := range teachers {
		board = append(board, leaderboardEntry(i+1, t))
	}
	return c.JSON(board)
}

func GetMostFeedbackTeachers(c *fiber.Ctx) error {
	limit, err := leaderboardLimit(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var teachers []models.Teacher
	err = database.DB.
		Where("total_feedback > 0").
		Order("total_feedback desc").
		Order("average_rating desc").
		Limit(limit).
		Find(&teachers).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get leaderboard"})
	}

	board := make([]LeaderboardEntry, 0, len(teachers))
	for i, t := range teachers {
		board = append(board, leaderboardEntry(i+1, t))
	}
	return c.JSON(board)
}

// GetMostImprovedTeachers ranks teachers by their period-over-period rating
// delta. Teachers with fewer than three feedback entries, or without rows in
// both comparison windows, are skipped.
func GetMostImprovedTeachers(c *fiber.Ctx) error {
	limit, err := leaderboardLimit(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var teachers []models.Teacher
	err = database.DB.Where("total_feedback >= ?", mostImprovedMinFeedback).Find(&teachers).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get leaderboard"})
	}

	var rows []models.Feedback
	if err := database.DB.Where("created_at >= ?", time.Now().Add(-2*services.ImprovementWindow)).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get leaderboard"})
	}
	byTeacher := make(map[uuid.UUID][]models.Feedback)
	for _, fb := range rows {
		byTeacher[fb.TeacherID] = append(byTeacher[fb.TeacherID], fb)
	}

	now := time.Now()
	board := make([]ImprovedEntry, 0)
	for _, t := range teachers {
		improvement, ok := services.WindowedImprovement(byTeacher[t.ID], now)
		if !ok {
			continue
		}
		board = append(board, ImprovedEntry{
			LeaderboardEntry: leaderboardEntry(0, t),
			Improvement:      improvement,
		})
	}
	sort.Slice(board, func(i, j int) bool { return board[i].Improvement > board[j].Improvement })
	if len(board) > limit {
		board = board[:limit]
	}
	for i := range board {
		board[i].Rank = i + 1
	}
	return c.JSON(board)
}
