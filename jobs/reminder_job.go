package jobs

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/notifications"
	"gorm.io/gorm"
)

// Students whose latest feedback is older than this get a nudge. The same
// threshold backs the /feedback/reminder-status endpoint.
const FeedbackReminderThresholdDays = 7

const qrStudentEmail = "qr-feedback@internal.local"

func SendFeedbackReminders() {
	log.Println("Running job: SendFeedbackReminders...")

	cutoff := time.Now().AddDate(0, 0, -FeedbackReminderThresholdDays)

	var students []models.User
	err := database.DB.
		Where("role = ? AND email <> ?", models.RoleStudent, qrStudentEmail).
		Find(&students).Error
	if err != nil {
		log.Printf("Error fetching students for reminders: %v", err)
		return
	}

	for _, student := range students {
		var last models.Feedback
		err := database.DB.
			Where("student_id = ?", student.ID).
			Order("created_at desc").
			First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking last feedback for %s: %v", student.Email, err)
			continue
		}
		if err == nil && last.CreatedAt.After(cutoff) {
			continue
		}

		emailSubject := "Your teachers would love to hear from you"
		emailBody := fmt.Sprintf(
			"<h1>Feedback Reminder</h1><p>Hi %s,</p><p>It has been a while since you last shared feedback. A minute of your time helps teachers improve their lectures.</p>",
			student.FullName,
		)

		go notifications.SendEmail(student.FullName, student.Email, emailSubject, emailBody)
	}
}
