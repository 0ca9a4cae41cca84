package services

import (
	"github.com/edufeedback/edu_feedback/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecalculateTeacherStats recomputes a teacher's cached average rating and
// feedback count from the current feedback rows. It must run inside the same
// transaction as the insert/delete that triggered it, otherwise two
// concurrent writers can race and leave a stale aggregate.
func RecalculateTeacherStats(tx *gorm.DB, teacherID uuid.UUID) error {
	var stats struct {
		Avg   float64
		Count int64
	}

	err := tx.Model(&models.Feedback{}).
		Where("teacher_id = ?", teacherID).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Teacher{}).
		Where("id = ?", teacherID).
		Updates(map[string]interface{}{
			"average_rating": stats.Avg,
			"total_feedback": stats.Count,
		}).Error
}
