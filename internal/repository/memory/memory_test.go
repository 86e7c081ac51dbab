//go:build !integration

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"materialAdvisor/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCatalogDecodes(t *testing.T) {
	items, err := DemoCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, items)

	seen := map[string]bool{}
	for _, m := range items {
		assert.NotEmpty(t, m.ID)
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
		_, ok := m.Property(domain.PropTensileStrength)
		assert.True(t, ok, "%s has no tensile strength", m.ID)
	}
}

func TestCatalogFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository([]domain.MaterialRecord{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "a", Name: "dup"}})

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	m, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", m.Name)

	_, err = repo.FindByID(ctx, "zzz")
	assert.True(t, errors.Is(err, domain.ErrMaterialNotFound))
}

func TestFeedbackReadAllOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, domain.FeedbackEvent{ID: "c", Timestamp: base.Add(time.Minute)}))
	require.NoError(t, repo.Append(ctx, domain.FeedbackEvent{ID: "b", Timestamp: base}))
	require.NoError(t, repo.Append(ctx, domain.FeedbackEvent{ID: "a", Timestamp: base}))

	events, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{events[0].ID, events[1].ID, events[2].ID})
}

func TestFeedbackAppendRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()

	require.NoError(t, repo.Append(ctx, domain.FeedbackEvent{ID: "a", MaterialID: "steel"}))
	err := repo.Append(ctx, domain.FeedbackEvent{ID: "a", MaterialID: "abs"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEvent)

	events, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "steel", events[0].MaterialID)
}

func TestModelRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewModelRepository()

	_, err := repo.LoadModel(ctx)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	saved := domain.Model{Version: 3, Weights: map[string]float64{domain.DimCost: 0.4}}
	require.NoError(t, repo.SaveModel(ctx, saved))
	saved.Weights[domain.DimCost] = 0.9

	got, err := repo.LoadModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, 0.4, got.Weights[domain.DimCost])
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCatalogRepository(nil).FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, NewFeedbackRepository().Append(ctx, domain.FeedbackEvent{}), context.Canceled)
}
