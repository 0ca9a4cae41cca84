package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/middleware"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/services"
	ws "github.com/edufeedback/edu_feedback/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errTeacherNotFound   = errors.New("Teacher not found")
	errDuplicateFeedback = errors.New("You have already submitted feedback for this teacher")
)

const abuseRejectionMessage = "Please remove inappropriate language from your feedback before submitting."

const qrStudentEmail = "qr-feedback@internal.local"

type SubmitFeedbackRequest struct {
	TeacherID string  `json:"teacher_id" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty"`
	Anonymous bool    `json:"anonymous,omitempty"`
	Doubt     *string `json:"doubt,omitempty"`
}

type QRFeedbackRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// normalizeComment trims the text and treats empty-after-trim as absent.
func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func SubmitFeedback(c *fiber.Ctx) error {
	studentID := middleware.TokenUserID(c)
	studentName := middleware.TokenUserName(c)

	var req SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rating must be a number between 1 and 5"})
	}

	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	comment := normalizeComment(req.Comment)
	doubt := normalizeComment(req.Doubt)

	if comment != nil && services.Abuse.Matches(*comment) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": abuseRejectionMessage})
	}

	displayName := studentName
	if req.Anonymous {
		displayName = models.AnonymousStudentName
	}

	var newFeedback models.Feedback
	var teacher models.Teacher
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&teacher, "id = ?", teacherID).Error; err != nil {
			return errTeacherNotFound
		}

		// Fast-path UX check; the partial unique index is the authoritative
		// guard against concurrent duplicates.
		var existing int64
		tx.Model(&models.Feedback{}).
			Where("teacher_id = ? AND student_id = ? AND source = ?", teacherID, studentID, models.FeedbackSourceWeb).
			Count(&existing)
		if existing > 0 {
			return errDuplicateFeedback
		}

		newFeedback = models.Feedback{
			TeacherID:   teacherID,
			StudentID:   studentID,
			StudentName: displayName,
			Rating:      req.Rating,
			Comment:     comment,
			Subject:     &teacher.Subject,
			Source:      models.FeedbackSourceWeb,
		}
		if err := tx.Create(&newFeedback).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateFeedback
			}
			return err
		}

		if err := services.RecalculateTeacherStats(tx, teacherID); err != nil {
			return err
		}

		if doubt != nil {
			newDoubt := models.Doubt{
				TeacherID:   teacherID,
				StudentID:   studentID,
				StudentName: displayName,
				Question:    *doubt,
				Status:      models.DoubtStatusOpen,
			}
			if err := tx.Create(&newDoubt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errTeacherNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, errDuplicateFeedback):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit feedback"})
		}
	}

	ws.PublishActivity(ws.ActivityEvent{
		FeedbackID:  newFeedback.ID.String(),
		TeacherID:   teacher.ID.String(),
		TeacherName: teacher.Name,
		StudentName: newFeedback.StudentName,
		Rating:      newFeedback.Rating,
		CreatedAt:   newFeedback.CreatedAt,
	})

	return c.Status(fiber.StatusCreated).JSON(newFeedback)
}

// SubmitQRFeedback is the unauthenticated kiosk path. All submissions share
// one lazily-created synthetic student account and are exempt from the
// one-per-student rule.
func SubmitQRFeedback(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var req QRFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rating must be a number between 1 and 5"})
	}

	comment := normalizeComment(req.Comment)
	if comment != nil && services.Abuse.Matches(*comment) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": abuseRejectionMessage})
	}

	var newFeedback models.Feedback
	var teacher models.Teacher
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&teacher, "id = ?", teacherID).Error; err != nil {
			return errTeacherNotFound
		}

		qrUser, err := findOrCreateQRUser(tx)
		if err != nil {
			return err
		}

		newFeedback = models.Feedback{
			TeacherID:   teacherID,
			StudentID:   qrUser.ID,
			StudentName: "QR Student",
			Rating:      req.Rating,
			Comment:     comment,
			Subject:     &teacher.Subject,
			Source:      models.FeedbackSourceQR,
		}
		if err := tx.Create(&newFeedback).Error; err != nil {
			return err
		}

		return services.RecalculateTeacherStats(tx, teacherID)
	})
	if err != nil {
		if errors.Is(err, errTeacherNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit QR feedback"})
	}

	ws.PublishActivity(ws.ActivityEvent{
		FeedbackID:  newFeedback.ID.String(),
		TeacherID:   teacher.ID.String(),
		TeacherName: teacher.Name,
		StudentName: newFeedback.StudentName,
		Rating:      newFeedback.Rating,
		CreatedAt:   newFeedback.CreatedAt,
	})

	return c.Status(fiber.StatusCreated).JSON(newFeedback)
}

func findOrCreateQRUser(tx *gorm.DB) (models.User, error) {
	var qrUser models.User
	err := tx.Where("email = ?", qrStudentEmail).First(&qrUser).Error
	if err == nil {
		return qrUser, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return qrUser, err
	}

	department := "QR"
	qrUser = models.User{
		FullName:   "QR Feedback Student",
		Email:      qrStudentEmail,
		Password:   "qr-feedback-temp-password",
		Role:       models.RoleStudent,
		Department: &department,
	}
	if err := tx.Create(&qrUser).Error; err != nil {
		return qrUser, err
	}
	return qrUser, nil
}

func GetTeacherFeedback(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errTeacherNotFound.Error()})
	}

	var feedbackList []models.Feedback
	if err := database.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&feedbackList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get feedback"})
	}
	return c.JSON(feedbackList)
}

// GetMySubmissions returns the teacher ids the caller has already rated, so
// the client can disable repeat submissions up front.
func GetMySubmissions(c *fiber.Ctx) error {
	studentID := middleware.TokenUserID(c)

	var teacherIDs []string
	err := database.DB.Model(&models.Feedback{}).
		Where("student_id = ?", studentID).
		Pluck("teacher_id", &teacherIDs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get submissions"})
	}
	if teacherIDs == nil {
		teacherIDs = []string{}
	}
	return c.JSON(teacherIDs)
}

type MyFeedbackEntry struct {
	models.Feedback
	TeacherName string  `json:"teacher_name"`
	Department  *string `json:"department"`
}

func GetMyFeedback(c *fiber.Ctx) error {
	studentID := middleware.TokenUserID(c)

	var feedbackList []models.Feedback
	err := database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&feedbackList).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get your feedback"})
	}

	var teachers []models.Teacher
	if err := database.DB.Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get your feedback"})
	}
	teacherByID := make(map[uuid.UUID]models.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID] = t
	}

	result := make([]MyFeedbackEntry, 0, len(feedbackList))
	for _, fb := range feedbackList {
		entry := MyFeedbackEntry{Feedback: fb, TeacherName: "Unknown Teacher"}
		if t, ok := teacherByID[fb.TeacherID]; ok {
			entry.TeacherName = t.Name
			entry.Department = &t.Department
		}
		result = append(result, entry)
	}
	return c.JSON(result)
}

const reminderThresholdDays = 7

func GetReminderStatus(c *fiber.Ctx) error {
	studentID := middleware.TokenUserID(c)

	var last models.Feedback
	err := database.DB.Where("student_id = ?", studentID).Order("created_at desc").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{
			"needsReminder":         true,
			"lastFeedbackDate":      nil,
			"daysSinceLastFeedback": nil,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get feedback reminder status"})
	}

	daysSince := int(time.Since(last.CreatedAt).Hours() / 24)
	return c.JSON(fiber.Map{
		"needsReminder":         daysSince >= reminderThresholdDays,
		"lastFeedbackDate":      last.CreatedAt,
		"daysSinceLastFeedback": daysSince,
	})
}
