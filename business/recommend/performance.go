package recommend

import "materialAdvisor/domain"

const positiveThreshold = 0.5

// evaluate measures the trained model on its own training examples, treating
// a prediction or label of at least 0.5 as positive.
func evaluate(examples []example, model domain.Model) domain.PerformanceSnapshot {
	var tp, fp, tn, fn float64
	for _, ex := range examples {
		pred := clamp01(model.Bias + weightedSum(ex.sub, model.Weights))
		predicted := pred >= positiveThreshold
		actual := ex.label >= positiveThreshold
		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && actual:
			fn++
		default:
			tn++
		}
	}

	snap := domain.PerformanceSnapshot{
		TrainingSize:     len(examples),
		LastTrainingDate: model.TrainedAt,
		ModelVersion:     model.Version,
	}
	if total := tp + fp + tn + fn; total > 0 {
		snap.Accuracy = (tp + tn) / total
	}
	if tp+fp > 0 {
		snap.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		snap.Recall = tp / (tp + fn)
	}
	if snap.Precision+snap.Recall > 0 {
		snap.F1Score = 2 * snap.Precision * snap.Recall / (snap.Precision + snap.Recall)
	}
	return snap
}
