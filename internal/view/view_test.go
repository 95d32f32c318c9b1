package view

import (
	"context"
	"testing"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/catalog"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSidebarDefaults(t *testing.T) {
	s := NewSidebar(nil)
	assert.Equal(t, domain.Baseline(), s.Scenario())
	assert.Equal(t, domain.Upfront(), s.Payment())

	loan := s.SetLoan(true).Payment()
	assert.Equal(t, domain.PaymentLoan, loan.Method)
	assert.Equal(t, "80", loan.Coverage.String())
	assert.Equal(t, 25, loan.TermYears)
	assert.Equal(t, "5.5", loan.InterestRate.String())
}

func TestSidebarScenarioSelection(t *testing.T) {
	s := NewSidebar(nil)

	next := s.SelectScenario("delayed")
	assert.Equal(t, domain.Delayed(), next.Scenario())
	assert.Equal(t, domain.Baseline(), s.Scenario(), "receiver untouched")

	editing := next.SelectScenario(CustomScenarioKey)
	assert.True(t, editing.ShowScenarioModal)
	assert.Equal(t, domain.Delayed(), editing.Scenario())
	assert.False(t, editing.CancelCustomScenario().ShowScenarioModal)

	saved, err := editing.SaveCustomScenario(domain.Custom("Stress", 90, 40, 80))
	require.NoError(t, err)
	assert.False(t, saved.ShowScenarioModal)
	assert.Equal(t, "custom-Stress", saved.ScenarioKey)
	assert.Equal(t, "2.10", calculation.ComputeMultiplier(saved.Scenario()).StringFixed(2))
	assert.Empty(t, editing.Scenarios.Custom(), "registry copied on save")

	_, err = editing.SaveCustomScenario(domain.Custom("", 50, 0, 50))
	assert.Error(t, err)

	unknown := saved.SelectScenario("custom-Nope")
	assert.Equal(t, domain.Baseline(), unknown.Scenario())
}

func TestSidebarLoanControls(t *testing.T) {
	s := NewSidebar(nil).SetLoan(true)

	assert.Equal(t, 50, s.SetCoverage(10).Coverage)
	assert.Equal(t, 100, s.SetCoverage(140).Coverage)
	assert.Equal(t, 65, s.SetCoverage(65).Coverage)

	assert.Equal(t, domain.PaymentUpfront, s.SetLoan(false).Payment().Method)
	assert.Equal(t, 80, s.SetLoan(false).SetLoan(true).Coverage, "loan params survive the switch")
}

func TestFromDefaults(t *testing.T) {
	reg, err := calculation.NewScenarioRegistry(domain.Custom("Stress", 80, 20, 70))
	require.NoError(t, err)

	s := FromDefaults(reg, domain.Defaults{Scenario: "custom-Stress", Payment: domain.Loan(90, 15, 6)})
	assert.Equal(t, "Stress (Custom)", s.Scenario().Label())
	p := s.Payment()
	assert.Equal(t, domain.PaymentLoan, p.Method)
	assert.Equal(t, "90", p.Coverage.String())
	assert.Equal(t, 15, p.TermYears)
	assert.Equal(t, "6", p.InterestRate.String())

	assert.Equal(t, NewSidebar(reg), FromDefaults(reg, domain.Defaults{}))
}

func TestParseTerm(t *testing.T) {
	tests := map[string]int{
		"30":    30,
		" 15 ":  15,
		"12abc": 12,
		"":      25,
		"abc":   25,
		"0":     25,
		"-5":    25,
		"7.9":   7,
	}
	for raw, want := range tests {
		if got := ParseTerm(raw); got != want {
			t.Fatalf("ParseTerm(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestParseRate(t *testing.T) {
	tests := map[string]string{
		"4.25":  "4.25",
		"7":     "7",
		"3.5%":  "3.5",
		".75":   "0.75",
		"":      "5.5",
		"0":     "5.5",
		"-1":    "5.5",
		"rate":  "5.5",
		"+6.1x": "6.1",
	}
	for raw, want := range tests {
		if got := ParseRate(raw).String(); got != want {
			t.Fatalf("ParseRate(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestSidebarTermAndRate(t *testing.T) {
	s := NewSidebar(nil).SetLoan(true).SetTerm("10").SetRate("11")
	p := s.Payment()
	assert.Equal(t, 10, p.TermYears)
	assert.Equal(t, "11", p.InterestRate.String())
	assert.NoError(t, p.Validate())
}

func TestAnalysisReducers(t *testing.T) {
	nav := navigation.NewState(1, 5, 7)
	nav.Data[5] = domain.PropertyFormData{PropertyValue: "1000"}
	a := NewAnalysis(nav, NewSidebar(nil))

	b := a.ToggleBenchmark().ToggleExpanded().RemoveAsset(5)
	assert.Equal(t, []int{1, 7}, b.PropertyIDs)
	assert.Equal(t, []int{1, 5, 7}, a.PropertyIDs, "receiver untouched")
	assert.True(t, b.ShowBenchmark)
	assert.True(t, b.ExpandedCharts)
	assert.False(t, a.ShowBenchmark)

	req := b.WithSidebar(b.Sidebar.SelectScenario("aggressive")).Request()
	assert.Equal(t, domain.Aggressive(), req.Scenario)
	assert.Equal(t, []int{1, 7}, req.PropertyIDs)
	assert.Contains(t, req.FormData, 5)
	assert.True(t, req.ShowBenchmark)

	nav.Data[5] = domain.PropertyFormData{}
	assert.Equal(t, "1000", a.FormData[5].PropertyValue, "navigation data copied")
}

func TestAnalysisNavigation(t *testing.T) {
	nav := navigation.NewState(3, 10)
	a := NewAnalysis(nav, NewSidebar(nil)).RemoveAsset(3)
	assert.Equal(t, "properties=10", navigation.Encode(a.Navigation()))
}

func TestAnalysisRequestRunsThroughEngine(t *testing.T) {
	e, err := calculation.NewDefaultAnalysisEngine()
	require.NoError(t, err)

	a := NewAnalysis(navigation.NewState(1), NewSidebar(nil))
	a = a.WithSidebar(a.Sidebar.SetLoan(true))
	out, err := e.AnalyzeAssets(context.Background(), a.Request())
	require.NoError(t, err)
	assert.Equal(t, "71.2%", out.Metrics.Display.LTV)
}

func TestPortfolioReducers(t *testing.T) {
	ref := catalog.MustLoadReference()
	p := NewPortfolio(ref.BaseColumns(), NewSidebar(nil))
	assert.Equal(t, domain.ChartPropertyCount, p.ChartView)
	assert.Equal(t, "province", p.BreakdownBy)

	q, err := p.SetChartView(domain.ChartDollarValue)
	require.NoError(t, err)
	assert.Equal(t, domain.ChartDollarValue, q.ChartView)
	_, err = p.SetChartView("pie")
	assert.Error(t, err)

	q, err = q.SetBreakdown("certification")
	require.NoError(t, err)
	assert.Equal(t, "certification", q.BreakdownBy)
	_, err = q.SetBreakdown("planet")
	assert.Error(t, err)

	toggled := q.ToggleColumn("efficiency").ToggleColumn("risk").ToggleColumn("missing")
	keys := []string{}
	for _, c := range calculation.EnabledColumns(toggled.Columns) {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"address", "noiChange", "dscrChange", "efficiency"}, keys)
	assert.Len(t, calculation.EnabledColumns(p.Columns), 4, "receiver untouched")

	req := toggled.ToggleExpanded().Request()
	assert.Equal(t, "certification", req.BreakdownBy)
	assert.Equal(t, domain.ChartDollarValue, req.ChartView)
}

func TestInsightsToggle(t *testing.T) {
	var i Insights
	assert.True(t, i.ToggleExpanded().Expanded)
	assert.False(t, i.ToggleExpanded().ToggleExpanded().Expanded)
}
