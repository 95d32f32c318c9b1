package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ScenarioKind discriminates the climate-policy scenario variants
type ScenarioKind string

const (
	ScenarioBaseline   ScenarioKind = "baseline"
	ScenarioAggressive ScenarioKind = "aggressive"
	ScenarioDelayed    ScenarioKind = "delayed"
	ScenarioCustom     ScenarioKind = "custom"
)

// CustomScenarioPrefix prefixes the selection key of a saved custom scenario
const CustomScenarioPrefix = "custom-"

// ScenarioInput selects a named scenario or carries custom slider values.
// Slider values are on a 0-100 scale and only read when Kind is custom.
type ScenarioInput struct {
	Kind                ScenarioKind    `yaml:"kind" json:"kind"`
	Name                string          `yaml:"name,omitempty" json:"name,omitempty"`
	EnergyPrices        decimal.Decimal `yaml:"energy_prices,omitempty" json:"energy_prices"`
	CarbonTax           decimal.Decimal `yaml:"carbon_tax,omitempty" json:"carbon_tax"`
	RegulatoryIntensity decimal.Decimal `yaml:"regulatory_intensity,omitempty" json:"regulatory_intensity"`
}

// Baseline returns the baseline scenario input
func Baseline() ScenarioInput { return ScenarioInput{Kind: ScenarioBaseline} }

// Aggressive returns the aggressive-transition scenario input
func Aggressive() ScenarioInput { return ScenarioInput{Kind: ScenarioAggressive} }

// Delayed returns the delayed-policy scenario input
func Delayed() ScenarioInput { return ScenarioInput{Kind: ScenarioDelayed} }

// Custom builds a custom scenario from slider values
func Custom(name string, energyPrices, carbonTax, regulatoryIntensity float64) ScenarioInput {
	return ScenarioInput{
		Kind:                ScenarioCustom,
		Name:                name,
		EnergyPrices:        decimal.NewFromFloat(energyPrices),
		CarbonTax:           decimal.NewFromFloat(carbonTax),
		RegulatoryIntensity: decimal.NewFromFloat(regulatoryIntensity),
	}
}

// Key returns the selection key used by the scenario dropdown
func (s ScenarioInput) Key() string {
	if s.Kind == ScenarioCustom {
		return CustomScenarioPrefix + s.Name
	}
	if s.Kind == "" {
		return string(ScenarioBaseline)
	}
	return string(s.Kind)
}

// Label returns a human readable scenario name
func (s ScenarioInput) Label() string {
	switch s.Kind {
	case ScenarioAggressive:
		return "Aggressive Transition"
	case ScenarioDelayed:
		return "Delayed Policy"
	case ScenarioCustom:
		if s.Name == "" {
			return "Custom"
		}
		return s.Name + " (Custom)"
	default:
		return "Baseline"
	}
}

// Description returns the explanatory text shown next to the scenario selector
func (s ScenarioInput) Description() string {
	switch s.Kind {
	case ScenarioAggressive:
		return "Rapid decarbonization with strong policy support"
	case ScenarioDelayed:
		return "Slower climate action with policy uncertainty"
	case ScenarioCustom:
		return "User-defined energy prices, carbon tax, and regulatory timeline"
	default:
		return "Current policy trajectory with moderate climate action"
	}
}

// ParseScenarioKind maps a user supplied kind name to a ScenarioKind
func ParseScenarioKind(s string) (ScenarioKind, error) {
	switch k := ScenarioKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ScenarioBaseline, ScenarioAggressive, ScenarioDelayed, ScenarioCustom:
		return k, nil
	case "":
		return ScenarioBaseline, nil
	}
	return "", fmt.Errorf("unknown scenario kind %q", s)
}
