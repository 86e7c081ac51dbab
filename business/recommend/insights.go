package recommend

import (
	"fmt"
	"math"
	"sort"

	"materialAdvisor/domain"
)

const insightShiftThreshold = 0.05

var dimensionLabels = map[string]string{
	domain.DimStrength:              "strength match",
	domain.DimCost:                  "cost",
	domain.DimSustainability:        "sustainability",
	domain.DimAvailability:          "availability",
	domain.DimApplicationSimilarity: "application similarity",
}

func buildInsights(prior, next domain.Model) []string {
	dims := append([]string(nil), domain.AllDimensions...)
	sort.SliceStable(dims, func(i, j int) bool {
		wi, wj := next.Weights[dims[i]], next.Weights[dims[j]]
		if wi != wj {
			return wi > wj
		}
		return dims[i] < dims[j]
	})

	out := []string{
		fmt.Sprintf("trained on %d feedback events", next.TrainingSize),
		fmt.Sprintf("%s is the strongest signal (weight %.2f)", dimensionLabels[dims[0]], next.Weights[dims[0]]),
	}

	for _, d := range dims {
		before, after := prior.Weights[d], next.Weights[d]
		delta := after - before
		if math.Abs(delta) < insightShiftThreshold {
			continue
		}
		verb := "increased"
		if delta < 0 {
			verb = "decreased"
		}
		out = append(out, fmt.Sprintf("%s weight %s from %.2f to %.2f", dimensionLabels[d], verb, before, after))
	}

	if weakest := dims[len(dims)-1]; next.Weights[weakest] == 0 {
		out = append(out, fmt.Sprintf("%s currently has no influence", dimensionLabels[weakest]))
	}

	return out
}
