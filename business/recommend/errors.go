package recommend

import (
	"fmt"
	"time"

	"materialAdvisor/domain"
)

// ValidationError reports a malformed requirement spec or feedback event.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

const neutralWeight = 0.2

// NeutralModel is served when no trained model can be loaded.
func NeutralModel() domain.Model {
	weights := make(map[string]float64, len(domain.AllDimensions))
	for _, d := range domain.AllDimensions {
		weights[d] = neutralWeight
	}
	return domain.Model{
		Version:    0,
		Weights:    weights,
		Bias:       0,
		Confidence: 0,
		Insights:   []string{"untrained model: all dimensions weighted equally"},
		TrainedAt:  time.Time{},
	}
}
