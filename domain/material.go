package domain

import (
	"gorm.io/datatypes"
)

// Property keys used by the filter and the scorer. The catalog may carry
// any other numeric attribute under its own name.
const (
	PropTensileStrength        = "tensileStrength"
	PropDensity                = "density"
	PropOperatingTempMin       = "operatingTempMin"
	PropOperatingTempMax       = "operatingTempMax"
	PropElectricalConductivity = "electricalConductivity"
	PropElectricalResistivity  = "electricalResistivity"
)

// Metadata keys read by the sustainability and availability sub-scores.
const (
	MetaSustainabilityScore = "sustainabilityScore"
	MetaRecyclable          = "recyclable"
	MetaAvailability        = "availability"
)

type MaterialCost struct {
	PricePerKg *float64 `gorm:"column:price_per_kg;type:numeric" json:"price_per_kg,omitempty"`
}

// CREATE TABLE public.materials (
//     id              TEXT PRIMARY KEY,
//     name            TEXT NOT NULL,
//     category        TEXT,
//     properties      JSONB,
//     cost_price_per_kg NUMERIC,
//     applications    JSONB,
//     advantages      JSONB,
//     disadvantages   JSONB,
//     metadata        JSONB,
//     position        BIGINT GENERATED ALWAYS AS IDENTITY
// );

type MaterialRecord struct {
	ID            string             `gorm:"primaryKey;column:id" json:"id"`
	Name          string             `gorm:"column:name;not null" json:"name"`
	Category      string             `gorm:"column:category" json:"category,omitempty"`
	Properties    map[string]float64 `gorm:"column:properties;type:jsonb;serializer:json" json:"properties"`
	Cost          MaterialCost       `gorm:"embedded;embeddedPrefix:cost_" json:"cost"`
	Applications  []string           `gorm:"column:applications;type:jsonb;serializer:json" json:"applications"`
	Advantages    []string           `gorm:"column:advantages;type:jsonb;serializer:json" json:"advantages,omitempty"`
	Disadvantages []string           `gorm:"column:disadvantages;type:jsonb;serializer:json" json:"disadvantages,omitempty"`
	Metadata      datatypes.JSONMap  `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	Position      int64              `gorm:"column:position;autoIncrement" json:"-"`
}

func (MaterialRecord) TableName() string {
	return "materials"
}

// Property returns a numeric attribute and whether the material carries it.
func (m MaterialRecord) Property(name string) (float64, bool) {
	if m.Properties == nil {
		return 0, false
	}
	v, ok := m.Properties[name]
	return v, ok
}
