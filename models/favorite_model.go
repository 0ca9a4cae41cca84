package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorite_student_teacher" json:"student_id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorite_student_teacher" json:"teacher_id"`

	Teacher Teacher `gorm:"foreignkey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
