package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackAnalysis caches the AI sentiment/quality result per feedback row.
// Upsert-by-feedback-id, latest write wins.
type FeedbackAnalysis struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FeedbackID     uuid.UUID `gorm:"type:uuid;not null;unique" json:"feedback_id"`
	Sentiment      string    `gorm:"size:20" json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	QualityScore   int       `json:"quality_score"`
	Keywords       string    `gorm:"type:text" json:"keywords"`

	Feedback Feedback `gorm:"foreignkey:FeedbackID;constraint:OnDelete:CASCADE" json:"-"`

	AnalyzedAt time.Time `gorm:"autoUpdateTime" json:"analyzed_at"`
}

func (a *FeedbackAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
