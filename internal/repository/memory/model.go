package memory

import (
	"context"
	"fmt"
	"sync"

	"materialAdvisor/domain"
)

type ModelRepository struct {
	mu    sync.RWMutex
	model *domain.Model
}

func NewModelRepository() *ModelRepository {
	return &ModelRepository{}
}

func (r *ModelRepository) LoadModel(ctx context.Context) (domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return domain.Model{}, fmt.Errorf("context error: %w", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.model == nil {
		return domain.Model{}, domain.ErrModelNotFound
	}
	return r.model.Clone(), nil
}

func (r *ModelRepository) SaveModel(ctx context.Context, model domain.Model) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	m := model.Clone()

	r.mu.Lock()
	r.model = &m
	r.mu.Unlock()
	return nil
}
