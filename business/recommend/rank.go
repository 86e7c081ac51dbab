package recommend

import (
	"sort"

	"materialAdvisor/domain"
)

// Recommend filters the catalog, scores the survivors and orders them by
// score, best first. Ties keep catalog order.
func Recommend(catalog []domain.MaterialRecord, spec domain.RequirementSpec, model domain.Model) []domain.ScoredMaterial {
	var s *Scorer
	return s.Rank(catalog, spec, model)
}

func (s *Scorer) Rank(catalog []domain.MaterialRecord, spec domain.RequirementSpec, model domain.Model) []domain.ScoredMaterial {
	scored := s.Score(Filter(catalog, spec), spec, model)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})
	return scored
}
