package domain

import "time"

// Scoring dimensions. Model weights are keyed by these names.
const (
	DimStrength              = "strength"
	DimCost                  = "cost"
	DimSustainability        = "sustainability"
	DimAvailability          = "availability"
	DimApplicationSimilarity = "applicationSimilarity"
)

// AllDimensions lists the dimensions the scorer knows how to compute.
var AllDimensions = []string{
	DimStrength,
	DimCost,
	DimSustainability,
	DimAvailability,
	DimApplicationSimilarity,
}

// Model is a scoring snapshot. It is treated as a value: a retrain produces
// a new Model instead of mutating the current one.
type Model struct {
	Version      int                `json:"version"`
	Weights      map[string]float64 `json:"weights"`
	Bias         float64            `json:"bias"`
	Confidence   float64            `json:"confidence"`
	Insights     []string           `json:"insights"`
	TrainingSize int                `json:"training_size"`
	TrainedAt    time.Time          `json:"trained_at"`
}

// Clone returns a deep copy so callers cannot alias the live snapshot.
func (m Model) Clone() Model {
	out := m
	out.Weights = make(map[string]float64, len(m.Weights))
	for k, v := range m.Weights {
		out.Weights[k] = v
	}
	out.Insights = append([]string(nil), m.Insights...)
	return out
}

type PerformanceSnapshot struct {
	Accuracy         float64   `json:"accuracy"`
	Precision        float64   `json:"precision"`
	Recall           float64   `json:"recall"`
	F1Score          float64   `json:"f1_score"`
	TrainingSize     int       `json:"training_size"`
	LastTrainingDate time.Time `json:"last_training_date"`
	ModelVersion     int       `json:"model_version"`
}
