package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"materialAdvisor/domain"
)

//go:embed seed/materials.json
var demoCatalog []byte

// DemoCatalog decodes the embedded demo catalog.
func DemoCatalog() ([]domain.MaterialRecord, error) {
	var out []domain.MaterialRecord
	if err := json.Unmarshal(demoCatalog, &out); err != nil {
		return nil, fmt.Errorf("failed to decode demo catalog: %w", err)
	}
	return out, nil
}

// CatalogRepository is a read-only catalog kept in insertion order.
type CatalogRepository struct {
	mu    sync.RWMutex
	items []domain.MaterialRecord
	index map[string]int
}

func NewCatalogRepository(items []domain.MaterialRecord) *CatalogRepository {
	r := &CatalogRepository{index: make(map[string]int, len(items))}
	for _, m := range items {
		if _, dup := r.index[m.ID]; dup {
			continue
		}
		r.index[m.ID] = len(r.items)
		r.items = append(r.items, m)
	}
	return r
}

func (r *CatalogRepository) FindAll(ctx context.Context) ([]domain.MaterialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.MaterialRecord(nil), r.items...), nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (domain.MaterialRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MaterialRecord{}, fmt.Errorf("context error: %w", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return domain.MaterialRecord{}, domain.ErrMaterialNotFound
	}
	return r.items[i], nil
}
