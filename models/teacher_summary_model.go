package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherSummary rows are append-only; readers take the most recent one.
type TeacherSummary struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID    uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Summary      string    `gorm:"type:text;not null" json:"summary"`
	Strengths    string    `gorm:"type:text" json:"strengths"`
	Improvements string    `gorm:"type:text" json:"improvements"`

	Teacher Teacher `gorm:"foreignkey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`

	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generated_at"`
}

func (s *TeacherSummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
