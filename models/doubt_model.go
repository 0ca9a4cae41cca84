package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DoubtStatusOpen     = "open"
	DoubtStatusAnswered = "answered"
)

// Doubt transitions open -> answered exactly once; Answer and AnsweredAt are
// set atomically with the status flip.
type Doubt struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID   uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	StudentName string    `gorm:"size:255;not null" json:"student_name"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	Answer      *string   `gorm:"type:text" json:"answer"`
	Status      string    `gorm:"size:20;not null;default:'open'" json:"status"`

	Teacher Teacher `gorm:"foreignkey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt  time.Time  `json:"created_at"`
	AnsweredAt *time.Time `json:"answered_at"`
}

func (d *Doubt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DoubtStatusOpen
	}
	return nil
}
