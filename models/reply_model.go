package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply snapshots the responder's name and role at creation time, so the
// thread stays readable even if the account changes later.
type Reply struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FeedbackID uuid.UUID `gorm:"type:uuid;not null" json:"feedback_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	UserName   string    `gorm:"size:255;not null" json:"user_name"`
	UserRole   string    `gorm:"size:20;not null" json:"user_role"`
	Content    string    `gorm:"type:text;not null" json:"content"`

	Feedback Feedback `gorm:"foreignkey:FeedbackID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
