package jobs

import (
	"fmt"
	"log"
	"strconv"
	"time"

	config "github.com/edufeedback/edu_feedback/configs"
	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/notifications"
)

const DefaultDoubtSLADays = 5

func doubtSLADays() int {
	if raw := config.Config("DOUBT_SLA_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
	}
	return DefaultDoubtSLADays
}

// EscalateOverdueDoubts emails the admin when open doubts have been waiting
// past the SLA threshold. Listing never transitions doubt state.
func EscalateOverdueDoubts() {
	log.Println("Running job: EscalateOverdueDoubts...")

	days := doubtSLADays()
	cutoff := time.Now().AddDate(0, 0, -days)

	var count int64
	err := database.DB.Model(&models.Doubt{}).
		Where("status = ? AND created_at <= ?", models.DoubtStatusOpen, cutoff).
		Count(&count).Error
	if err != nil {
		log.Printf("Error counting overdue doubts: %v", err)
		return
	}
	if count == 0 {
		return
	}

	adminEmail := config.Config("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Printf("%d overdue doubts but ADMIN_EMAIL is not set, skipping escalation email", count)
		return
	}

	emailSubject := fmt.Sprintf("%d student doubts past the %d-day SLA", count, days)
	emailBody := fmt.Sprintf(
		"<h1>Doubt SLA Alert</h1><p>%d student doubts have been open for more than %d days. Please review the moderation queue.</p>",
		count, days,
	)

	go notifications.SendEmail("Admin", adminEmail, emailSubject, emailBody)
}
