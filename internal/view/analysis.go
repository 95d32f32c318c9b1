package view

import (
	"fmt"
	"maps"
	"slices"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/navigation"
)

// Analysis is the state of the asset analysis page
type Analysis struct {
	Sidebar        Sidebar
	PropertyIDs    []int
	FormData       map[int]domain.PropertyFormData
	ShowBenchmark  bool
	ExpandedCharts bool
}

// NewAnalysis starts an analysis from the navigation state handed over by the
// details wizard
func NewAnalysis(nav navigation.State, sidebar Sidebar) Analysis {
	return Analysis{
		Sidebar:     sidebar,
		PropertyIDs: slices.Clone(nav.PropertyIDs),
		FormData:    maps.Clone(nav.Data),
	}
}

// WithSidebar replaces the controls state
func (a Analysis) WithSidebar(s Sidebar) Analysis {
	a.Sidebar = s
	return a
}

// ToggleBenchmark shows or hides the benchmark line on the risk chart
func (a Analysis) ToggleBenchmark() Analysis {
	a.ShowBenchmark = !a.ShowBenchmark
	return a
}

// ToggleExpanded switches between the compact and expanded chart layout
func (a Analysis) ToggleExpanded() Analysis {
	a.ExpandedCharts = !a.ExpandedCharts
	return a
}

// RemoveAsset drops a property from the selection. Its form data is kept so the
// navigation links still round-trip.
func (a Analysis) RemoveAsset(id int) Analysis {
	a.PropertyIDs = slices.DeleteFunc(slices.Clone(a.PropertyIDs), func(v int) bool { return v == id })
	return a
}

// Navigation returns the query state that reproduces this selection
func (a Analysis) Navigation() navigation.State {
	s := navigation.NewState(a.PropertyIDs...)
	s.Current = 0
	if len(a.FormData) > 0 {
		s.Data = maps.Clone(a.FormData)
	}
	return s
}

// Request builds the engine request for the current state
func (a Analysis) Request() calculation.AnalysisRequest {
	return calculation.AnalysisRequest{
		PropertyIDs:    slices.Clone(a.PropertyIDs),
		FormData:       maps.Clone(a.FormData),
		Scenario:       a.Sidebar.Scenario(),
		Payment:        a.Sidebar.Payment(),
		ShowBenchmark:  a.ShowBenchmark,
		ExpandedCharts: a.ExpandedCharts,
	}
}

// Portfolio is the state of the portfolio overview page
type Portfolio struct {
	Sidebar        Sidebar
	ChartView      string
	BreakdownBy    string
	ExpandedCharts bool
	Columns        []domain.TableColumn
}

// NewPortfolio starts the portfolio page with the given holdings columns
func NewPortfolio(columns []domain.TableColumn, sidebar Sidebar) Portfolio {
	return Portfolio{
		Sidebar:     sidebar,
		ChartView:   domain.ChartPropertyCount,
		BreakdownBy: domain.BreakdownOptions[0].Value,
		Columns:     slices.Clone(columns),
	}
}

// WithSidebar replaces the controls state
func (p Portfolio) WithSidebar(s Sidebar) Portfolio {
	p.Sidebar = s
	return p
}

// SetChartView switches the breakdown chart between property count and dollar value
func (p Portfolio) SetChartView(v string) (Portfolio, error) {
	if v != domain.ChartPropertyCount && v != domain.ChartDollarValue {
		return p, fmt.Errorf("unknown chart view %q", v)
	}
	p.ChartView = v
	return p, nil
}

// SetBreakdown changes the breakdown grouping
func (p Portfolio) SetBreakdown(v string) (Portfolio, error) {
	if !domain.HasOption(domain.BreakdownOptions, v) {
		return p, fmt.Errorf("unknown breakdown %q", v)
	}
	p.BreakdownBy = v
	return p, nil
}

// ToggleExpanded switches between the compact and expanded chart layout
func (p Portfolio) ToggleExpanded() Portfolio {
	p.ExpandedCharts = !p.ExpandedCharts
	return p
}

// ToggleColumn flips a holdings column on or off. Unknown keys are ignored.
func (p Portfolio) ToggleColumn(key string) Portfolio {
	cols := slices.Clone(p.Columns)
	for i := range cols {
		if cols[i].Key == key {
			cols[i].Enabled = !cols[i].Enabled
		}
	}
	p.Columns = cols
	return p
}

// Request builds the engine request for the current state
func (p Portfolio) Request() calculation.PortfolioRequest {
	return calculation.PortfolioRequest{
		Scenario:    p.Sidebar.Scenario(),
		Payment:     p.Sidebar.Payment(),
		Columns:     slices.Clone(p.Columns),
		ChartView:   p.ChartView,
		BreakdownBy: p.BreakdownBy,
	}
}

// Insights is the state of the key insights page
type Insights struct {
	Expanded bool
}

// ToggleExpanded shows or hides the per-region detail
func (i Insights) ToggleExpanded() Insights {
	i.Expanded = !i.Expanded
	return i
}
