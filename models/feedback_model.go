package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeedbackSourceWeb = "web"
	FeedbackSourceQR  = "qr"
)

// AnonymousStudentName is the display placeholder stored when a student asks
// for anonymity. The real StudentID is kept, so duplicate prevention and
// moderation still operate on true identity.
const AnonymousStudentName = "Anonymous Student"

// Feedback is immutable after creation except for admin-initiated deletion.
// The partial unique index enforces at most one authenticated ("web") row per
// (teacher, student) pair; kiosk ("qr") rows share one synthetic account and
// are deliberately exempt.
type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_feedback_teacher_student,where:source = 'web'" json:"teacher_id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_feedback_teacher_student,where:source = 'web'" json:"student_id"`
	StudentName string    `gorm:"size:255;not null" json:"student_name"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     *string   `gorm:"type:text" json:"comment"`
	Subject     *string   `gorm:"size:100" json:"subject"`
	Source      string    `gorm:"size:10;not null;default:'web'" json:"source"`

	Teacher Teacher `gorm:"foreignkey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	Student User    `gorm:"foreignkey:StudentID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Source == "" {
		f.Source = FeedbackSourceWeb
	}
	return nil
}
