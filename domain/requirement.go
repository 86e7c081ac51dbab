package domain

import "math"

type ElectricalType string

const (
	ElectricalAny       ElectricalType = "any"
	ElectricalConductor ElectricalType = "conductor"
	ElectricalInsulator ElectricalType = "insulator"
)

// Range is an optional numeric interval. A nil bound is open.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Bounds returns the closed interval with missing bounds replaced by
// lowDefault and +Inf.
func (r Range) Bounds(lowDefault float64) (float64, float64) {
	lo, hi := lowDefault, math.Inf(1)
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

func (r Range) IsEmpty() bool {
	return r.Min == nil && r.Max == nil
}

// RequirementSpec is the per-query requirement set. Every field is optional;
// an absent field never excludes a material.
type RequirementSpec struct {
	TensileStrength        *Range           `json:"tensile_strength,omitempty"`
	Density                *Range           `json:"density,omitempty"`
	OperatingTemperature   *Range           `json:"operating_temperature,omitempty"`
	Budget                 *Range           `json:"budget,omitempty"`
	Properties             map[string]Range `json:"properties,omitempty"`
	ElectricalType         ElectricalType   `json:"electrical_type,omitempty"`
	ApplicationContext     string           `json:"application_context,omitempty"`
	SustainabilityPriority bool             `json:"sustainability_priority,omitempty"`
}

// IsEmpty reports whether the spec carries no filtering constraint.
func (s RequirementSpec) IsEmpty() bool {
	if s.TensileStrength != nil && !s.TensileStrength.IsEmpty() {
		return false
	}
	if s.Density != nil && !s.Density.IsEmpty() {
		return false
	}
	if s.OperatingTemperature != nil && !s.OperatingTemperature.IsEmpty() {
		return false
	}
	if s.Budget != nil && !s.Budget.IsEmpty() {
		return false
	}
	for _, r := range s.Properties {
		if !r.IsEmpty() {
			return false
		}
	}
	return s.ElectricalType == "" || s.ElectricalType == ElectricalAny
}

// Float is a small helper for building ranges in code and tests.
func Float(v float64) *float64 {
	return &v
}
