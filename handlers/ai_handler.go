package handlers

import (
	"errors"
	"strings"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyzeFeedback runs sentiment and quality scoring on one feedback entry
// and caches the result. Re-running replaces the cached analysis.
func AnalyzeFeedback(c *fiber.Ctx) error {
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	comment := ""
	if feedback.Comment != nil {
		comment = *feedback.Comment
	}
	sentiment := services.AI.AnalyzeSentiment(comment)
	quality := services.AI.ScoreFeedbackQuality(comment, feedback.Rating)

	analysis := models.FeedbackAnalysis{
		FeedbackID:     feedbackID,
		Sentiment:      sentiment.Sentiment,
		SentimentScore: sentiment.Score,
		QualityScore:   quality.Score,
		Keywords:       strings.Join(sentiment.Keywords, ","),
	}

	var existing models.FeedbackAnalysis
	err = database.DB.Where("feedback_id = ?", feedbackID).First(&existing).Error
	switch {
	case err == nil:
		analysis.ID = existing.ID
		err = database.DB.Model(&existing).Updates(map[string]interface{}{
			"sentiment":       analysis.Sentiment,
			"sentiment_score": analysis.SentimentScore,
			"quality_score":   analysis.QualityScore,
			"keywords":        analysis.Keywords,
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = database.DB.Create(&analysis).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save feedback analysis"})
	}

	return c.JSON(fiber.Map{
		"feedback_id":   feedbackID,
		"sentiment":     sentiment,
		"quality_score": quality,
	})
}

func GetFeedbackAnalysis(c *fiber.Ctx) error {
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Analysis not found"})
	}

	var analysis models.FeedbackAnalysis
	if err := database.DB.Where("feedback_id = ?", feedbackID).First(&analysis).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Analysis not found"})
	}
	return c.JSON(analysis)
}

// GenerateTeacherSummary builds a fresh AI summary over all of a teacher's
// feedback and appends it to the summary history.
func GenerateTeacherSummary(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var feedbackList []models.Feedback
	if err := database.DB.Where("teacher_id = ?", teacherID).Find(&feedbackList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate summary"})
	}

	summary := services.AI.GenerateFeedbackSummary(feedbackList)

	record := models.TeacherSummary{
		TeacherID:    teacherID,
		Summary:      summary.Summary,
		Strengths:    strings.Join(summary.Strengths, "\n"),
		Improvements: strings.Join(summary.Improvements, "\n"),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save summary"})
	}

	return c.JSON(fiber.Map{
		"teacher_id":        teacherID,
		"summary":           summary.Summary,
		"strengths":         summary.Strengths,
		"improvements":      summary.Improvements,
		"overall_sentiment": summary.OverallSentiment,
		"generated_at":      record.GeneratedAt,
	})
}

func GetTeacherSummary(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var record models.TeacherSummary
	err = database.DB.Where("teacher_id = ?", teacherID).Order("generated_at desc").First(&record).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No summary generated for this teacher yet"})
	}

	return c.JSON(fiber.Map{
		"teacher_id":   teacherID,
		"summary":      record.Summary,
		"strengths":    splitLines(record.Strengths),
		"improvements": splitLines(record.Improvements),
		"generated_at": record.GeneratedAt,
	})
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

type RecommendRequest struct {
	Preferences string `json:"preferences" validate:"required"`
}

type RecommendedTeacher struct {
	Teacher   models.Teacher `json:"teacher"`
	Score     float64        `json:"score"`
	Reasoning string         `json:"reasoning"`
}

func RecommendTeachers(c *fiber.Ctx) error {
	var req RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if strings.TrimSpace(req.Preferences) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Preferences are required"})
	}

	var teachers []models.Teacher
	if err := database.DB.Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get recommendations"})
	}

	teacherByID := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID.String()] = t
	}

	recs := services.AI.RecommendTeachers(req.Preferences, teachers)
	result := make([]RecommendedTeacher, 0, len(recs))
	for _, rec := range recs {
		t, ok := teacherByID[rec.TeacherID]
		if !ok {
			continue
		}
		result = append(result, RecommendedTeacher{Teacher: t, Score: rec.Score, Reasoning: rec.Reasoning})
	}
	return c.JSON(result)
}

type ImproveFeedbackRequest struct {
	Comment string `json:"comment" validate:"required"`
}

func ImproveFeedback(c *fiber.Ctx) error {
	var req ImproveFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if strings.TrimSpace(req.Comment) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Comment is required"})
	}

	return c.JSON(fiber.Map{
		"original": req.Comment,
		"improved": services.AI.ImproveFeedback(req.Comment),
	})
}

// GenerateReplyTemplates drafts up to three reply suggestions for staff
// responding to a feedback comment.
func GenerateReplyTemplates(c *fiber.Ctx) error {
	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}

	comment := ""
	if feedback.Comment != nil {
		comment = *feedback.Comment
	}
	return c.JSON(fiber.Map{"templates": services.AI.GenerateReplyTemplates(comment)})
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

const chatHistoryLimit = 5

// Chat answers a user question with the last few turns of their history as
// conversational context, then records the exchange.
func Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	userID := middleware.TokenUserID(c)

	var recent []models.ChatHistory
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(chatHistoryLimit).Find(&recent).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process chat message"})
	}

	// Oldest first for the prompt.
	history := make([]services.ChatTurn, 0, 2*len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history,
			services.ChatTurn{Role: "user", Content: recent[i].Message},
			services.ChatTurn{Role: "assistant", Content: recent[i].Response},
		)
	}

	response := services.AI.Chat(message, history)

	entry := models.ChatHistory{UserID: &userID, Message: message, Response: response}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save chat message"})
	}

	return c.JSON(fiber.Map{"message": message, "response": response})
}
