package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AverageRating and TotalFeedback are derived aggregates maintained by
// services.RecalculateTeacherStats inside the same transaction as every
// feedback insert/delete. Nothing else may write them.
type Teacher struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Department    string    `gorm:"size:100;not null" json:"department"`
	Subject       string    `gorm:"size:100;not null" json:"subject"`
	AverageRating float64   `gorm:"default:0" json:"average_rating"`
	TotalFeedback int       `gorm:"default:0" json:"total_feedback"`

	Bio                *string `gorm:"type:text" json:"bio"`
	ProfileImage       *string `gorm:"size:255" json:"profile_image"`
	OfficeHours        *string `gorm:"size:255" json:"office_hours"`
	ContactInfo        *string `gorm:"size:255" json:"contact_info"`
	TeachingPhilosophy *string `gorm:"type:text" json:"teaching_philosophy"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
