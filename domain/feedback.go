package domain

import "time"

const (
	FeedbackRating    = "rating"
	FeedbackSelection = "selection"
)

// FeedbackEvent is immutable once appended to the feedback store.
type FeedbackEvent struct {
	ID                 string          `gorm:"primaryKey;column:id" json:"id"`
	Timestamp          time.Time       `gorm:"column:occurred_at;not null;index" json:"timestamp"`
	SessionID          string          `gorm:"column:session_id" json:"session_id"`
	MaterialID         string          `gorm:"column:material_id;not null;index" json:"material_id"`
	Requirements       RequirementSpec `gorm:"column:requirements;type:jsonb;serializer:json" json:"requirements"`
	FeedbackType       string          `gorm:"column:feedback_type;not null" json:"feedback_type"`
	Rating             *int            `gorm:"column:rating" json:"rating,omitempty"`
	Selected           *bool           `gorm:"column:selected" json:"selected,omitempty"`
	ApplicationContext string          `gorm:"column:application_context" json:"application_context,omitempty"`
	Comment            string          `gorm:"column:comment;type:text" json:"comment,omitempty"`
}

func (FeedbackEvent) TableName() string {
	return "feedback_events"
}

// Context returns the application context in force for the event, falling
// back to the one recorded in the requirement snapshot.
func (e FeedbackEvent) Context() string {
	if e.ApplicationContext != "" {
		return e.ApplicationContext
	}
	return e.Requirements.ApplicationContext
}
