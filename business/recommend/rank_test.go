//go:build !integration

package recommend

import (
	"testing"

	"materialAdvisor/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendSteelOverPlastic(t *testing.T) {
	spec := domain.RequirementSpec{
		TensileStrength: &domain.Range{Min: f(200)},
		Budget:          &domain.Range{Max: f(10)},
	}

	ranked := Recommend(steelAndPlastic(), spec, NeutralModel())
	require.Len(t, ranked, 1)
	assert.Equal(t, "steel", ranked[0].Material.ID)
	assert.Greater(t, ranked[0].OverallScore, 0.0)
}

func TestRecommendSortsDescending(t *testing.T) {
	spec := domain.RequirementSpec{Budget: &domain.Range{Max: f(100)}}

	ranked := Recommend(mixedCatalog(), spec, domain.Model{Weights: map[string]float64{domain.DimCost: 1}})
	require.Len(t, ranked, 4)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].OverallScore, ranked[i].OverallScore)
	}
	assert.Equal(t, "abs", ranked[0].Material.ID)
}

func TestRecommendTiesKeepCatalogOrder(t *testing.T) {
	catalog := []domain.MaterialRecord{{ID: "c"}, {ID: "a"}, {ID: "b"}}

	ranked := Recommend(catalog, domain.RequirementSpec{}, NeutralModel())
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{ranked[0].Material.ID, ranked[1].Material.ID, ranked[2].Material.ID})
}
