package domain

import (
	"fmt"
	"time"
)

// RiskLevel is a precipitation-probability-derived severity band for a
// single day, totally ordered by severity.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// RiskLevels lists the valid levels in ascending severity order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskExtreme}

// ParseRiskLevel returns the level for s, or an error if s is not one of the
// four values. No case folding: the wire format is uppercase.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskExtreme:
		return RiskLevel(s), nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// Severity returns the ordinal position of the level (LOW=0 .. EXTREME=3).
func (l RiskLevel) Severity() int {
	for i, level := range RiskLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// Precipitation probability bands. These are the single source of truth for
// both the prompt instruction and the corrector pass: LOW <20, MEDIUM 20-50,
// HIGH 50-80, EXTREME >80.
const (
	MediumProbThreshold  = 20
	HighProbThreshold    = 50
	ExtremeProbThreshold = 80
)

// RiskLevelForProbability derives the level for a precipitation probability
// percentage.
func RiskLevelForProbability(maxPrecipProb int) RiskLevel {
	switch {
	case maxPrecipProb >= ExtremeProbThreshold:
		return RiskExtreme
	case maxPrecipProb >= HighProbThreshold:
		return RiskHigh
	case maxPrecipProb >= MediumProbThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RainRange is an expected rainfall interval in millimeters, min <= max.
type RainRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DayRisk is one day's analyzed risk, the atomic reporting unit.
type DayRisk struct {
	Date                string     `json:"date"`
	RiskLevel           RiskLevel  `json:"riskLevel"`
	ExpectedRainMmRange *RainRange `json:"expectedRainMmRange"`
	Confidence          float64    `json:"confidence"`
	Advice              string     `json:"advice"`
	Rationale           string     `json:"rationale"`
	Flags               []string   `json:"flags"`
}

// ModelReport is the validated, schema-conformant shape the model must emit.
type ModelReport struct {
	ModelVersion string    `json:"modelVersion"`
	Timezone     string    `json:"timezone"`
	Days         []DayRisk `json:"days"`
}

// TravelRiskReport is the orchestrator's final output: the corrected model
// report plus request metadata. Never mutated after the corrector pass.
type TravelRiskReport struct {
	ItineraryID  string    `json:"itineraryId"`
	GeneratedAt  time.Time `json:"generatedAt"`
	ModelVersion string    `json:"modelVersion"`
	Timezone     string    `json:"timezone"`
	Days         []DayRisk `json:"days"`
}
