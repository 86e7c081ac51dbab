package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultModelKey = "current"

type modelStateRow struct {
	Key       string    `gorm:"column:model_key;primaryKey"`
	StateJSON []byte    `gorm:"column:state_json"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (modelStateRow) TableName() string {
	return "recommend_model_state"
}

// ModelRepository keeps the serving model as one JSON row.
type ModelRepository struct {
	DB  *gorm.DB
	Key string
}

var _ recommend.ModelRepository = (*ModelRepository)(nil)

func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{DB: db, Key: defaultModelKey}
}

func (r *ModelRepository) LoadModel(ctx context.Context) (domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return domain.Model{}, fmt.Errorf("context error: %w", err)
	}

	var row modelStateRow
	err := r.DB.WithContext(ctx).First(&row, "model_key = ?", r.Key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Model{}, domain.ErrModelNotFound
	}
	if err != nil {
		return domain.Model{}, fmt.Errorf("failed to query recommend_model_state: %w", err)
	}

	var model domain.Model
	if err := json.Unmarshal(row.StateJSON, &model); err != nil {
		return domain.Model{}, fmt.Errorf("failed to unmarshal state_json: %w", err)
	}

	return model, nil
}

func (r *ModelRepository) SaveModel(ctx context.Context, model domain.Model) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	row := modelStateRow{
		Key:       r.Key,
		StateJSON: raw,
		UpdatedAt: time.Now().UTC(),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "model_key"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert recommend_model_state: %w", err)
	}

	return nil
}
