package recommend

import (
	"math"
	"sort"

	"materialAdvisor/domain"
)

const (
	conductorMinConductivity = 1.0 // S/m
	insulatorMinResistivity  = 1e6 // ohm*m
)

// Filter dimension names reported by Explain.
const (
	CheckTensileStrength      = "tensile_strength"
	CheckDensity              = "density"
	CheckOperatingTemperature = "operating_temperature"
	CheckBudget               = "budget"
	CheckElectricalType       = "electrical_type"
	checkPropertyPrefix       = "properties."
)

type FilterDecision struct {
	MaterialID string   `json:"material_id"`
	Retained   bool     `json:"retained"`
	Failed     []string `json:"failed,omitempty"`
}

// Filter returns the catalog entries that satisfy every constraint in spec,
// in catalog order. A material that lacks the attribute a constraint needs
// is kept.
func Filter(catalog []domain.MaterialRecord, spec domain.RequirementSpec) []domain.MaterialRecord {
	if len(catalog) == 0 || spec.IsEmpty() {
		return catalog
	}

	out := make([]domain.MaterialRecord, 0, len(catalog))
	for _, m := range catalog {
		if len(failedChecks(m, spec)) == 0 {
			out = append(out, m)
		}
	}
	return out
}

// Explain reports, for every catalog entry, which constraints excluded it.
func Explain(catalog []domain.MaterialRecord, spec domain.RequirementSpec) []FilterDecision {
	out := make([]FilterDecision, 0, len(catalog))
	for _, m := range catalog {
		failed := failedChecks(m, spec)
		out = append(out, FilterDecision{
			MaterialID: m.ID,
			Retained:   len(failed) == 0,
			Failed:     failed,
		})
	}
	return out
}

func failedChecks(m domain.MaterialRecord, spec domain.RequirementSpec) []string {
	var failed []string

	if !propertyInRange(m, domain.PropTensileStrength, spec.TensileStrength) {
		failed = append(failed, CheckTensileStrength)
	}
	if !propertyInRange(m, domain.PropDensity, spec.Density) {
		failed = append(failed, CheckDensity)
	}
	if !temperatureOverlaps(m, spec.OperatingTemperature) {
		failed = append(failed, CheckOperatingTemperature)
	}
	if !withinBudget(m, spec.Budget) {
		failed = append(failed, CheckBudget)
	}

	if len(spec.Properties) > 0 {
		names := make([]string, 0, len(spec.Properties))
		for name := range spec.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			r := spec.Properties[name]
			if !propertyInRange(m, name, &r) {
				failed = append(failed, checkPropertyPrefix+name)
			}
		}
	}

	if !electricalMatches(m, spec.ElectricalType) {
		failed = append(failed, CheckElectricalType)
	}

	return failed
}

func knownProperty(m domain.MaterialRecord, name string) (float64, bool) {
	v, ok := m.Property(name)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func propertyInRange(m domain.MaterialRecord, name string, r *domain.Range) bool {
	if r == nil || r.IsEmpty() {
		return true
	}
	v, ok := knownProperty(m, name)
	if !ok {
		return true
	}
	lo, hi := r.Bounds(math.Inf(-1))
	return v >= lo && v <= hi
}

// temperatureOverlaps tests interval overlap between the required window and
// the material's operating window; an unknown material bound is open.
func temperatureOverlaps(m domain.MaterialRecord, r *domain.Range) bool {
	if r == nil || r.IsEmpty() {
		return true
	}
	if r.Min != nil {
		if matMax, ok := knownProperty(m, domain.PropOperatingTempMax); ok && matMax < *r.Min {
			return false
		}
	}
	if r.Max != nil {
		if matMin, ok := knownProperty(m, domain.PropOperatingTempMin); ok && matMin > *r.Max {
			return false
		}
	}
	return true
}

func withinBudget(m domain.MaterialRecord, r *domain.Range) bool {
	if r == nil || r.IsEmpty() {
		return true
	}
	if m.Cost.PricePerKg == nil || math.IsNaN(*m.Cost.PricePerKg) {
		return true
	}
	lo, hi := r.Bounds(0)
	price := *m.Cost.PricePerKg
	return price >= lo && price <= hi
}

func electricalMatches(m domain.MaterialRecord, want domain.ElectricalType) bool {
	switch want {
	case domain.ElectricalConductor:
		if v, ok := knownProperty(m, domain.PropElectricalConductivity); ok {
			return v >= conductorMinConductivity
		}
	case domain.ElectricalInsulator:
		if v, ok := knownProperty(m, domain.PropElectricalResistivity); ok {
			return v >= insulatorMinResistivity
		}
	}
	return true
}
