package calculation

import (
	"fmt"
	"strings"

	"github.com/climatelens/risk-analytics/internal/domain"
)

// ScenarioRegistry resolves scenario selection keys to inputs. It holds the
// three named scenarios plus any saved custom scenarios, in save order.
// A registry is immutable once built; With returns an extended copy.
type ScenarioRegistry struct {
	custom []domain.ScenarioInput
}

// NewScenarioRegistry creates a registry preloaded with custom scenarios
func NewScenarioRegistry(custom ...domain.ScenarioInput) (*ScenarioRegistry, error) {
	r := &ScenarioRegistry{}
	for _, c := range custom {
		if err := r.add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ValidateCustomScenario checks that a scenario can be saved under a name
func ValidateCustomScenario(input domain.ScenarioInput) error {
	if input.Kind != domain.ScenarioCustom {
		return fmt.Errorf("only custom scenarios can be saved, got kind %q", input.Kind)
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("custom scenario name is required")
	}
	return nil
}

// add inserts a custom scenario, replacing any existing one with the same name
func (r *ScenarioRegistry) add(input domain.ScenarioInput) error {
	if err := ValidateCustomScenario(input); err != nil {
		return err
	}
	for i, c := range r.custom {
		if c.Name == input.Name {
			r.custom[i] = input
			return nil
		}
	}
	r.custom = append(r.custom, input)
	return nil
}

// With returns a copy of the registry that also holds input
func (r *ScenarioRegistry) With(input domain.ScenarioInput) (*ScenarioRegistry, error) {
	next := &ScenarioRegistry{custom: r.Custom()}
	if err := next.add(input); err != nil {
		return nil, err
	}
	return next, nil
}

// Lookup maps a selection key to a scenario and reports whether the key was
// known. Unknown keys map to baseline.
func (r *ScenarioRegistry) Lookup(key string) (domain.ScenarioInput, bool) {
	key = strings.TrimSpace(key)
	switch domain.ScenarioKind(strings.ToLower(key)) {
	case domain.ScenarioBaseline, "":
		return domain.Baseline(), true
	case domain.ScenarioAggressive:
		return domain.Aggressive(), true
	case domain.ScenarioDelayed:
		return domain.Delayed(), true
	}
	if name, ok := strings.CutPrefix(key, domain.CustomScenarioPrefix); ok {
		for _, c := range r.custom {
			if c.Name == name {
				return c, true
			}
		}
	}
	return domain.Baseline(), false
}

// Resolve is Lookup without the known flag
func (r *ScenarioRegistry) Resolve(key string) domain.ScenarioInput {
	in, _ := r.Lookup(key)
	return in
}

// List returns the named scenarios followed by saved custom scenarios
func (r *ScenarioRegistry) List() []domain.ScenarioInput {
	out := []domain.ScenarioInput{domain.Baseline(), domain.Aggressive(), domain.Delayed()}
	return append(out, r.custom...)
}

// Custom returns the saved custom scenarios
func (r *ScenarioRegistry) Custom() []domain.ScenarioInput {
	return append([]domain.ScenarioInput(nil), r.custom...)
}
