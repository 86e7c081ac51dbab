package recommend

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"materialAdvisor/domain"
)

const neutralScore = 0.5

var availabilityLabels = map[string]float64{
	"high":   1.0,
	"medium": 0.6,
	"low":    0.3,
}

// Scorer computes sub-scores and overall scores. The zero value is usable and
// scores application similarity from material applications only.
type Scorer struct {
	corpus commentCorpus
}

// NewScorer builds a scorer that also matches application context against
// comments left in historical feedback.
func NewScorer(history []domain.FeedbackEvent) *Scorer {
	return &Scorer{corpus: buildCorpus(history)}
}

// Score scores materials with the comment-free scorer.
func Score(materials []domain.MaterialRecord, spec domain.RequirementSpec, model domain.Model) []domain.ScoredMaterial {
	var s *Scorer
	return s.Score(materials, spec, model)
}

func (s *Scorer) Score(materials []domain.MaterialRecord, spec domain.RequirementSpec, model domain.Model) []domain.ScoredMaterial {
	out := make([]domain.ScoredMaterial, 0, len(materials))
	for _, m := range materials {
		sub, warnings := s.SubScores(m, spec)
		out = append(out, domain.ScoredMaterial{
			Material:     m,
			OverallScore: Overall(sub, model),
			SubScores:    sub,
			Warnings:     warnings,
		})
	}
	return out
}

// SubScores returns every dimension in [0,1]. A dimension that cannot be
// computed falls back to 0.5 and adds a warning.
func (s *Scorer) SubScores(m domain.MaterialRecord, spec domain.RequirementSpec) (map[string]float64, []string) {
	var corpus commentCorpus
	if s != nil {
		corpus = s.corpus
	}

	calcs := []struct {
		dim string
		fn  func() (float64, string)
	}{
		{domain.DimStrength, func() (float64, string) { return strengthScore(m, spec) }},
		{domain.DimCost, func() (float64, string) { return costScore(m, spec) }},
		{domain.DimSustainability, func() (float64, string) { return sustainabilityScore(m, spec) }},
		{domain.DimAvailability, func() (float64, string) { return availabilityScore(m) }},
		{domain.DimApplicationSimilarity, func() (float64, string) { return similarityScore(corpus, m, spec) }},
	}

	sub := make(map[string]float64, len(calcs))
	var warnings []string
	for _, c := range calcs {
		v, warn := safeSubScore(c.dim, c.fn)
		sub[c.dim] = v
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}
	return sub, warnings
}

// Overall combines sub-scores with the model into a 0-100 score. Dimensions
// missing from the model weigh 0.
func Overall(sub map[string]float64, model domain.Model) float64 {
	raw := model.Bias
	for _, dim := range sortedKeys(model.Weights) {
		if v, ok := sub[dim]; ok {
			raw += model.Weights[dim] * v
		}
	}
	if math.IsNaN(raw) {
		return 0
	}
	return clamp(100*raw, 0, 100)
}

func safeSubScore(dim string, fn func() (float64, string)) (v float64, warning string) {
	defer func() {
		if r := recover(); r != nil {
			v = neutralScore
			warning = fmt.Sprintf("%s: %v", dim, r)
		}
	}()

	v, warning = fn()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return neutralScore, dim + ": not a number"
	}
	if warning != "" {
		warning = dim + ": " + warning
	}
	return clamp01(v), warning
}

// strengthScore decays smoothly with the distance between the material's
// tensile strength and the requested target.
func strengthScore(m domain.MaterialRecord, spec domain.RequirementSpec) (float64, string) {
	r := spec.TensileStrength
	if r == nil || r.IsEmpty() {
		return neutralScore, ""
	}
	v, ok := m.Property(domain.PropTensileStrength)
	if !ok {
		return neutralScore, "material has no tensileStrength"
	}

	var target, halfWidth float64
	switch {
	case r.Min != nil && r.Max != nil:
		target = (*r.Min + *r.Max) / 2
		halfWidth = (*r.Max - *r.Min) / 2
	case r.Min != nil:
		target = *r.Min
	default:
		target = *r.Max
	}

	scale := math.Max(math.Max(math.Abs(target), halfWidth), 1)
	d := math.Abs(v-target) / scale
	if r.Max == nil && v > target {
		// exceeding a minimum is penalised far less than missing it
		d /= 4
	}
	return 1 / (1 + d), ""
}

func costScore(m domain.MaterialRecord, spec domain.RequirementSpec) (float64, string) {
	if spec.Budget == nil || spec.Budget.Max == nil {
		return neutralScore, ""
	}
	if m.Cost.PricePerKg == nil {
		return neutralScore, "material has no price"
	}
	return 1 / (1 + *m.Cost.PricePerKg / *spec.Budget.Max), ""
}

func sustainabilityScore(m domain.MaterialRecord, spec domain.RequirementSpec) (float64, string) {
	if !spec.SustainabilityPriority {
		return neutralScore, ""
	}
	if v, ok := metaNumber(m, domain.MetaSustainabilityScore); ok {
		return v, ""
	}
	if raw, ok := m.Metadata[domain.MetaRecyclable]; ok {
		if b, ok := raw.(bool); ok {
			if b {
				return 1, ""
			}
			return 0, ""
		}
	}
	return neutralScore, "material has no sustainability metadata"
}

func availabilityScore(m domain.MaterialRecord) (float64, string) {
	raw, ok := m.Metadata[domain.MetaAvailability]
	if !ok {
		return neutralScore, ""
	}
	if label, ok := raw.(string); ok {
		if v, ok := availabilityLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
			return v, ""
		}
		return neutralScore, fmt.Sprintf("unknown availability %q", label)
	}
	if v, ok := metaNumber(m, domain.MetaAvailability); ok {
		return v, ""
	}
	return neutralScore, "unreadable availability"
}

func similarityScore(corpus commentCorpus, m domain.MaterialRecord, spec domain.RequirementSpec) (float64, string) {
	if strings.TrimSpace(spec.ApplicationContext) == "" {
		return neutralScore, ""
	}
	v, ok := corpus.overlap(spec.ApplicationContext, m)
	if !ok {
		return neutralScore, ""
	}
	return v, ""
}

func metaNumber(m domain.MaterialRecord, key string) (float64, bool) {
	raw, ok := m.Metadata[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// sortedKeys fixes the summation order so equal inputs give bit-identical scores.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
