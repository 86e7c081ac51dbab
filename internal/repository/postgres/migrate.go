package postgres

import (
	"fmt"

	"materialAdvisor/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables owned by this service.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.MaterialRecord{}, &domain.FeedbackEvent{}, &modelStateRow{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
