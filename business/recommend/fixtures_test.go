//go:build !integration

package recommend

import (
	"materialAdvisor/domain"
)

func f(v float64) *float64 { return domain.Float(v) }

func steelAndPlastic() []domain.MaterialRecord {
	return []domain.MaterialRecord{
		{
			ID:   "steel",
			Name: "Steel",
			Properties: map[string]float64{
				domain.PropTensileStrength:  500,
				domain.PropOperatingTempMin: -20,
				domain.PropOperatingTempMax: 400,
			},
			Cost:         domain.MaterialCost{PricePerKg: f(3)},
			Applications: []string{"automotive frames", "bridges"},
		},
		{
			ID:   "plastic",
			Name: "Plastic",
			Properties: map[string]float64{
				domain.PropTensileStrength:  40,
				domain.PropOperatingTempMin: -20,
				domain.PropOperatingTempMax: 80,
			},
			Cost:         domain.MaterialCost{PricePerKg: f(2)},
			Applications: []string{"toys", "housings"},
		},
	}
}

func mixedCatalog() []domain.MaterialRecord {
	return []domain.MaterialRecord{
		{
			ID: "copper",
			Properties: map[string]float64{
				domain.PropTensileStrength:        220,
				domain.PropDensity:                8.96,
				domain.PropOperatingTempMin:       -200,
				domain.PropOperatingTempMax:       250,
				domain.PropElectricalConductivity: 5.8e7,
				domain.PropElectricalResistivity:  1.7e-8,
			},
			Cost:     domain.MaterialCost{PricePerKg: f(9.5)},
			Metadata: map[string]any{"availability": "high", "recyclable": true},
		},
		{
			ID: "abs",
			Properties: map[string]float64{
				domain.PropTensileStrength:        40,
				domain.PropDensity:                1.05,
				domain.PropOperatingTempMin:       -20,
				domain.PropOperatingTempMax:       80,
				domain.PropElectricalConductivity: 1e-14,
				domain.PropElectricalResistivity:  1e14,
			},
			Cost:     domain.MaterialCost{PricePerKg: f(2.1)},
			Metadata: map[string]any{"availability": "medium"},
		},
		{
			ID: "titanium",
			Properties: map[string]float64{
				domain.PropTensileStrength:  950,
				domain.PropDensity:          4.43,
				domain.PropOperatingTempMin: -200,
				domain.PropOperatingTempMax: 400,
			},
			Cost:     domain.MaterialCost{PricePerKg: f(35)},
			Metadata: map[string]any{"sustainabilityScore": 0.5},
		},
		{
			ID:   "mystery",
			Name: "Material with no data",
		},
	}
}

func ids(items []domain.MaterialRecord) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.ID)
	}
	return out
}
