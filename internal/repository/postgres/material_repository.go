package postgres

import (
	"context"
	"errors"
	"fmt"

	"materialAdvisor/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{
		DB: db,
	}
}

// FindAll returns the catalog in insertion order.
func (r *MaterialRepository) FindAll(ctx context.Context) ([]domain.MaterialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var materials []domain.MaterialRecord
	err := r.DB.WithContext(ctx).Order("position ASC").Find(&materials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find materials: %w", err)
	}

	return materials, nil
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (domain.MaterialRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaterialRecord{}, fmt.Errorf("context error: %w", err)
	}

	var material domain.MaterialRecord

	err := r.DB.WithContext(ctx).First(&material, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MaterialRecord{}, domain.ErrMaterialNotFound
		}
		return domain.MaterialRecord{}, fmt.Errorf("failed to find material: %w", err)
	}

	return material, nil
}

// Seed inserts materials that are not in the table yet. Existing rows are
// left untouched.
func (r *MaterialRepository) Seed(ctx context.Context, materials []domain.MaterialRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(materials) == 0 {
		return nil
	}

	rows := make([]domain.MaterialRecord, len(materials))
	copy(rows, materials)
	for i := range rows {
		rows[i].Position = 0
	}

	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed materials: %w", err)
	}

	return nil
}
