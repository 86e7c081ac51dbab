package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "material_feedback_events_total",
			Help: "Count of accepted feedback events by feedback_type.",
		},
		[]string{"feedback_type"},
	)

	RetrainsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "material_model_retrains_total",
			Help: "Count of retrain runs by outcome (trained, cold_start, error).",
		},
		[]string{"outcome"},
	)

	ModelConfidence = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "material_model_confidence",
		Help: "Confidence of the model currently used for scoring.",
	})

	ModelVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "material_model_version",
		Help: "Version of the model currently used for scoring.",
	})
)

func init() {
	prometheus.MustRegister(FeedbackEventsTotal, RetrainsTotal, ModelConfidence, ModelVersion)
}
