package recommend

import (
	"context"
	"fmt"
	"sort"

	"materialAdvisor/domain"
	"materialAdvisor/pkg/logger"
)

// DebugRecommend explains the decision for every catalog entry: which filter
// checks failed and, for retained entries, each dimension's contribution.
// Retained entries come first, best score first.
func (s *RecommendService) DebugRecommend(ctx context.Context, spec domain.RequirementSpec) ([]domain.DebugRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := ValidateRequirements(spec); err != nil {
		return nil, err
	}

	catalog, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	model := s.CurrentModel()
	scorer := s.scorer.Load()
	decisions := Explain(catalog, spec)

	logger.Debug("material_debug_recommend",
		"trace_id", TraceIDFromContext(ctx),
		"catalog_size", len(catalog),
		"model_version", model.Version,
	)

	out := make([]domain.DebugRecommendation, 0, len(catalog))
	for i, m := range catalog {
		rec := domain.DebugRecommendation{
			MaterialID:   m.ID,
			Name:         m.Name,
			Retained:     decisions[i].Retained,
			FailedChecks: decisions[i].Failed,
		}
		if rec.Retained {
			sub, warnings := scorer.SubScores(m, spec)
			rec.SubScores = sub
			rec.Warnings = warnings
			rec.OverallScore = Overall(sub, model)
			rec.Contributions = contributions(sub, model)
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Retained != out[j].Retained {
			return out[i].Retained
		}
		return out[i].OverallScore > out[j].OverallScore
	})
	return out, nil
}

func contributions(sub map[string]float64, model domain.Model) map[string]float64 {
	out := make(map[string]float64, len(sub))
	for dim, v := range sub {
		out[dim] = 100 * model.Weights[dim] * v
	}
	return out
}
