package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatHistory struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID   *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Message  string     `gorm:"type:text;not null" json:"message"`
	Response string     `gorm:"type:text;not null" json:"response"`

	CreatedAt time.Time `json:"created_at"`
}

func (h *ChatHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
