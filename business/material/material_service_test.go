//go:build !integration

package material

import (
	"context"
	"testing"

	"materialAdvisor/domain"
	"materialAdvisor/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *materialService {
	return NewMaterialService(memory.NewCatalogRepository([]domain.MaterialRecord{
		{ID: "steel", Category: "metal"},
		{ID: "abs", Category: "polymer"},
		{ID: "copper", Category: "Metal"},
	}))
}

func TestListMaterialsByCategory(t *testing.T) {
	svc := newService()

	all, err := svc.ListMaterials(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	metals, err := svc.ListMaterials(context.Background(), "metal")
	require.NoError(t, err)
	require.Len(t, metals, 2)
	assert.Equal(t, "steel", metals[0].ID)
	assert.Equal(t, "copper", metals[1].ID)
}

func TestGetMaterial(t *testing.T) {
	svc := newService()

	m, err := svc.GetMaterial(context.Background(), "abs")
	require.NoError(t, err)
	assert.Equal(t, "polymer", m.Category)

	_, err = svc.GetMaterial(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = svc.GetMaterial(context.Background(), " ")
	assert.Error(t, err)
}
