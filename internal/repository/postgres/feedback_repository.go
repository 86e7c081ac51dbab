package postgres

import (
	"context"
	"errors"
	"fmt"

	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"

	"gorm.io/gorm"
)

// FeedbackRepository stores feedback events. Rows are only ever inserted.
type FeedbackRepository struct {
	DB *gorm.DB
}

var _ recommend.FeedbackRepository = (*FeedbackRepository)(nil)

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Append(ctx context.Context, event domain.FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("feedback %q: %w", event.ID, domain.ErrDuplicateEvent)
		}
		return fmt.Errorf("failed to save feedback event: %w", err)
	}

	return nil
}

func (r *FeedbackRepository) ReadAll(ctx context.Context) ([]domain.FeedbackEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.FeedbackEvent
	if err := r.DB.WithContext(ctx).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to read feedback events: %w", err)
	}

	return events, nil
}
