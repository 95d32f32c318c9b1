// Package view holds the dashboard's interactive state. Every state is a value;
// reducers return a new state and never modify the receiver.
package view

import (
	"regexp"
	"strconv"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

// CustomScenarioKey is the dropdown entry that opens the custom scenario editor
const CustomScenarioKey = "custom"

// Loan coverage slider bounds, percent
const (
	MinLoanCoverage = 50
	MaxLoanCoverage = 100
)

var (
	leadingInt   = regexp.MustCompile(`^\s*[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)`)
)

// Sidebar is the analysis controls panel shared by the asset and portfolio views
type Sidebar struct {
	Collapsed         bool
	ScenarioKey       string
	ShowScenarioModal bool
	Scenarios         *calculation.ScenarioRegistry

	Method       domain.PaymentMethod
	Coverage     int
	TermYears    int
	InterestRate decimal.Decimal
}

// NewSidebar returns the initial controls: baseline scenario, upfront payment
// and the default loan parameters ready for when the loan switch is turned on.
func NewSidebar(scenarios *calculation.ScenarioRegistry) Sidebar {
	if scenarios == nil {
		scenarios, _ = calculation.NewScenarioRegistry()
	}
	return Sidebar{
		ScenarioKey:  string(domain.ScenarioBaseline),
		Scenarios:    scenarios,
		Method:       domain.PaymentUpfront,
		Coverage:     int(domain.DefaultLoanCoverage.IntPart()),
		TermYears:    domain.DefaultLoanTermYears,
		InterestRate: domain.DefaultLoanInterestRate,
	}
}

// FromDefaults returns the controls preselected by the configured defaults
func FromDefaults(scenarios *calculation.ScenarioRegistry, d domain.Defaults) Sidebar {
	s := NewSidebar(scenarios)
	if d.Scenario != "" {
		s = s.SelectScenario(d.Scenario)
	}
	if p := d.Payment; p.IsLoan() {
		s = s.SetLoan(true).
			SetCoverage(int(p.Coverage.IntPart())).
			SetTerm(strconv.Itoa(p.TermYears)).
			SetRate(p.InterestRate.String())
	}
	return s
}

// Scenario resolves the selected key against the registry
func (s Sidebar) Scenario() domain.ScenarioInput {
	return s.Scenarios.Resolve(s.ScenarioKey)
}

// Payment returns the selected payment structure
func (s Sidebar) Payment() domain.PaymentInput {
	if s.Method != domain.PaymentLoan {
		return domain.Upfront()
	}
	return domain.PaymentInput{
		Method:       domain.PaymentLoan,
		Coverage:     decimal.NewFromInt(int64(s.Coverage)),
		TermYears:    s.TermYears,
		InterestRate: s.InterestRate,
	}
}

// ToggleCollapsed shows or hides the panel
func (s Sidebar) ToggleCollapsed() Sidebar {
	s.Collapsed = !s.Collapsed
	return s
}

// SelectScenario picks a dropdown entry. Picking the custom entry only opens the
// editor; the active scenario changes once a custom scenario is saved.
func (s Sidebar) SelectScenario(key string) Sidebar {
	if key == CustomScenarioKey {
		s.ShowScenarioModal = true
		return s
	}
	s.ScenarioKey = key
	s.ShowScenarioModal = false
	return s
}

// CancelCustomScenario closes the editor without changing the selection
func (s Sidebar) CancelCustomScenario() Sidebar {
	s.ShowScenarioModal = false
	return s
}

// SaveCustomScenario registers a custom scenario and selects it
func (s Sidebar) SaveCustomScenario(input domain.ScenarioInput) (Sidebar, error) {
	next, err := s.Scenarios.With(input)
	if err != nil {
		return s, err
	}
	s.Scenarios = next
	s.ScenarioKey = input.Key()
	s.ShowScenarioModal = false
	return s, nil
}

// SetLoan switches between upfront payment and loan financing
func (s Sidebar) SetLoan(loan bool) Sidebar {
	s.Method = domain.PaymentUpfront
	if loan {
		s.Method = domain.PaymentLoan
	}
	return s
}

// SetCoverage moves the coverage slider, bounded to its range
func (s Sidebar) SetCoverage(percent int) Sidebar {
	s.Coverage = min(max(percent, MinLoanCoverage), MaxLoanCoverage)
	return s
}

// SetTerm takes the raw term field. Input without a leading positive integer
// resets the term to the default.
func (s Sidebar) SetTerm(raw string) Sidebar {
	s.TermYears = ParseTerm(raw)
	return s
}

// SetRate takes the raw interest rate field. Input without a leading positive
// number resets the rate to the default.
func (s Sidebar) SetRate(raw string) Sidebar {
	s.InterestRate = ParseRate(raw)
	return s
}

// ParseTerm reads the leading integer of raw, falling back to the default term
func ParseTerm(raw string) int {
	n, err := strconv.Atoi(trimSigned(leadingInt.FindString(raw)))
	if err != nil || n < 1 {
		return domain.DefaultLoanTermYears
	}
	return n
}

// ParseRate reads the leading number of raw, falling back to the default rate
func ParseRate(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(trimSigned(leadingFloat.FindString(raw)))
	if err != nil || !v.IsPositive() {
		return domain.DefaultLoanInterestRate
	}
	return v
}

// trimSigned drops leading whitespace and a plus sign, which strconv and
// decimal parsing do not both accept
func trimSigned(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '+') {
		s = s[1:]
	}
	return s
}
