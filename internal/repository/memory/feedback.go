package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"materialAdvisor/domain"
)

// FeedbackRepository is an append-only, process-local feedback log.
type FeedbackRepository struct {
	mu     sync.RWMutex
	events []domain.FeedbackEvent
	ids    map[string]struct{}
}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{ids: make(map[string]struct{})}
}

func (r *FeedbackRepository) Append(ctx context.Context, event domain.FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[event.ID]; ok {
		return fmt.Errorf("feedback %q: %w", event.ID, domain.ErrDuplicateEvent)
	}
	r.ids[event.ID] = struct{}{}
	r.events = append(r.events, event)
	return nil
}

func (r *FeedbackRepository) ReadAll(ctx context.Context) ([]domain.FeedbackEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	r.mu.RLock()
	out := append([]domain.FeedbackEvent(nil), r.events...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
