package recommend

import (
	"sort"
	"time"

	"materialAdvisor/domain"
)

type TrainerConfig struct {
	LearningRate       float64
	Epochs             int
	ConfidenceCeiling  float64
	ConfidenceHalfSize float64 // event count at which confidence reaches half the ceiling
}

const (
	defaultLearningRate       = 0.1
	defaultEpochs             = 25
	defaultConfidenceCeiling  = 0.95
	defaultConfidenceHalfSize = 50.0
	maxBias                   = 0.5
)

func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		LearningRate:       defaultLearningRate,
		Epochs:             defaultEpochs,
		ConfidenceCeiling:  defaultConfidenceCeiling,
		ConfidenceHalfSize: defaultConfidenceHalfSize,
	}
}

type Trainer struct {
	cfg TrainerConfig
}

func NewTrainer(cfg TrainerConfig) *Trainer {
	def := DefaultTrainerConfig()
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = def.Epochs
	}
	if cfg.ConfidenceCeiling <= 0 || cfg.ConfidenceCeiling > def.ConfidenceCeiling {
		cfg.ConfidenceCeiling = def.ConfidenceCeiling
	}
	if cfg.ConfidenceHalfSize <= 0 {
		cfg.ConfidenceHalfSize = def.ConfidenceHalfSize
	}
	return &Trainer{cfg: cfg}
}

type TrainResult struct {
	Model       domain.Model
	Performance domain.PerformanceSnapshot
	Used        int
	Skipped     int      // events with an unknown material or no usable label
	Orphans     []string // material ids referenced by feedback but absent from the catalog
}

type example struct {
	sub   map[string]float64
	label float64
}

// Train fits new weights from the whole feedback history. The result only
// depends on the multiset of events, not on the order they are passed in.
// With no usable event the prior model is returned unchanged.
func (t *Trainer) Train(feedback []domain.FeedbackEvent, prior domain.Model, materials []domain.MaterialRecord) TrainResult {
	events := canonicalOrder(feedback)

	byID := make(map[string]domain.MaterialRecord, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	scorer := NewScorer(events)
	examples := make([]example, 0, len(events))
	orphanSet := make(map[string]struct{})
	var newest time.Time
	skipped := 0

	for _, ev := range events {
		y, ok := label(ev)
		if !ok {
			skipped++
			continue
		}
		m, ok := byID[ev.MaterialID]
		if !ok {
			orphanSet[ev.MaterialID] = struct{}{}
			skipped++
			continue
		}

		spec := ev.Requirements
		spec.ApplicationContext = ev.Context()
		sub, _ := scorer.SubScores(m, spec)

		examples = append(examples, example{sub: sub, label: y})
		if ev.Timestamp.After(newest) {
			newest = ev.Timestamp
		}
	}

	orphans := make([]string, 0, len(orphanSet))
	for id := range orphanSet {
		orphans = append(orphans, id)
	}
	sort.Strings(orphans)

	if len(examples) == 0 {
		return TrainResult{
			Model:       prior,
			Performance: domain.PerformanceSnapshot{ModelVersion: prior.Version, LastTrainingDate: prior.TrainedAt},
			Skipped:     skipped,
			Orphans:     orphans,
		}
	}

	weights := t.fit(examples, prior.Weights)
	bias := meanResidual(examples, weights)

	model := domain.Model{
		Version:      prior.Version + 1,
		Weights:      weights,
		Bias:         bias,
		Confidence:   t.confidence(len(examples)),
		TrainingSize: len(examples),
		TrainedAt:    newest,
	}
	model.Insights = buildInsights(prior, model)

	return TrainResult{
		Model:       model,
		Performance: evaluate(examples, model),
		Used:        len(examples),
		Skipped:     skipped,
		Orphans:     orphans,
	}
}

// fit runs batch gradient descent on the squared error of the weighted sum.
// Each weight is clamped to [0,1] after every update.
func (t *Trainer) fit(examples []example, prior map[string]float64) map[string]float64 {
	weights := make(map[string]float64, len(prior)+len(domain.AllDimensions))
	for k, v := range prior {
		weights[k] = clamp01(v)
	}
	for _, d := range domain.AllDimensions {
		if _, ok := weights[d]; !ok {
			weights[d] = 0
		}
	}

	n := float64(len(examples))
	grad := make(map[string]float64, len(domain.AllDimensions))
	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		for _, d := range domain.AllDimensions {
			grad[d] = 0
		}
		for _, ex := range examples {
			err := ex.label - weightedSum(ex.sub, weights)
			for _, d := range domain.AllDimensions {
				grad[d] += err * ex.sub[d]
			}
		}
		for _, d := range domain.AllDimensions {
			weights[d] = clamp01(weights[d] + t.cfg.LearningRate*grad[d]/n)
		}
	}
	return weights
}

func (t *Trainer) confidence(n int) float64 {
	fn := float64(n)
	return t.cfg.ConfidenceCeiling * fn / (fn + t.cfg.ConfidenceHalfSize)
}

func weightedSum(sub map[string]float64, weights map[string]float64) float64 {
	sum := 0.0
	for _, d := range domain.AllDimensions {
		sum += weights[d] * sub[d]
	}
	return sum
}

func meanResidual(examples []example, weights map[string]float64) float64 {
	sum := 0.0
	for _, ex := range examples {
		sum += ex.label - weightedSum(ex.sub, weights)
	}
	return clamp(sum/float64(len(examples)), -maxBias, maxBias)
}

// label maps an event to a target in [0,1].
func label(ev domain.FeedbackEvent) (float64, bool) {
	switch ev.FeedbackType {
	case domain.FeedbackRating:
		if ev.Rating == nil || *ev.Rating < 1 || *ev.Rating > 5 {
			return 0, false
		}
		return float64(*ev.Rating-1) / 4, true
	case domain.FeedbackSelection:
		if ev.Selected == nil {
			return 0, false
		}
		if *ev.Selected {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func canonicalOrder(feedback []domain.FeedbackEvent) []domain.FeedbackEvent {
	events := append([]domain.FeedbackEvent(nil), feedback...)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.MaterialID != b.MaterialID {
			return a.MaterialID < b.MaterialID
		}
		return a.SessionID < b.SessionID
	})
	return events
}
