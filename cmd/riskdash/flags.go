package main

import (
	"fmt"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/view"
	"github.com/spf13/cobra"
)

// controls are the analysis sidebar settings. Only flags given on the command
// line override the configured defaults.
type controls struct {
	scenario   string
	name       string
	energy     float64
	carbon     float64
	regulatory float64
	payment    string
	coverage   int
	term       string
	rate       string
}

func (c *controls) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&c.scenario, "scenario", "s", "", "scenario key: baseline, aggressive, delayed, custom-<name> or custom")
	f.StringVar(&c.name, "name", "Ad hoc", "name of the custom scenario built from the sliders")
	f.Float64Var(&c.energy, "energy", 50, "custom scenario energy price slider (0-100)")
	f.Float64Var(&c.carbon, "carbon", 0, "custom scenario carbon tax slider (0-100)")
	f.Float64Var(&c.regulatory, "regulatory", 50, "custom scenario regulatory intensity slider (0-100)")
	f.StringVar(&c.payment, "payment", "", "retrofit payment: upfront or loan")
	f.IntVar(&c.coverage, "coverage", 80, "loan coverage percent (50-100)")
	f.StringVar(&c.term, "term", "25", "loan term in years")
	f.StringVar(&c.rate, "rate", "5.5", "loan interest rate percent")
}

// apply replays the given flags onto sb
func (c *controls) apply(cmd *cobra.Command, sb view.Sidebar) (view.Sidebar, error) {
	f := cmd.Flags()
	if f.Changed("scenario") {
		sb = sb.SelectScenario(c.scenario)
	}
	if sb.ShowScenarioModal {
		var err error
		sb, err = sb.SaveCustomScenario(domain.Custom(c.name, c.energy, c.carbon, c.regulatory))
		if err != nil {
			return sb, fmt.Errorf("invalid custom scenario: %w", err)
		}
	} else if f.Changed("scenario") {
		if _, known := sb.Scenarios.Lookup(c.scenario); !known {
			return sb, fmt.Errorf("unknown scenario %q", c.scenario)
		}
	}

	if f.Changed("payment") {
		method, err := domain.ParsePaymentMethod(c.payment)
		if err != nil {
			return sb, err
		}
		sb = sb.SetLoan(method == domain.PaymentLoan)
	}
	if f.Changed("coverage") {
		sb = sb.SetCoverage(c.coverage)
	}
	if f.Changed("term") {
		sb = sb.SetTerm(c.term)
	}
	if f.Changed("rate") {
		sb = sb.SetRate(c.rate)
	}
	return sb, nil
}

// outputFlags select the report format and an optional output directory
type outputFlags struct {
	format string
	dir    string
}

func (o *outputFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&o.format, "format", "f", defaultFormat, "output format: console, console-lite, csv, detailed-csv, html, json or all")
	cmd.Flags().StringVarP(&o.dir, "output-dir", "o", "", "write report files to this directory instead of stdout")
}

// portfolioFlags are the portfolio view settings
type portfolioFlags struct {
	chart     string
	breakdown string
	columns   []string
	expanded  bool
}

func (p *portfolioFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.chart, "chart", domain.ChartPropertyCount, "breakdown chart metric: propertyCount or dollarValue")
	f.StringVar(&p.breakdown, "breakdown", domain.BreakdownOptions[0].Value, "breakdown grouping")
	f.StringSliceVar(&p.columns, "columns", nil, "enabled holdings columns (default set when omitted)")
	f.BoolVar(&p.expanded, "expanded-charts", false, "use the expanded chart layout")
}

// apply builds the portfolio state from the flags
func (p *portfolioFlags) apply(cmd *cobra.Command, state view.Portfolio) (view.Portfolio, error) {
	state, err := state.SetChartView(p.chart)
	if err != nil {
		return state, err
	}
	if state, err = state.SetBreakdown(p.breakdown); err != nil {
		return state, err
	}
	if p.expanded {
		state = state.ToggleExpanded()
	}
	if cmd.Flags().Changed("columns") {
		want := make(map[string]bool, len(p.columns))
		for _, key := range p.columns {
			want[key] = true
		}
		for _, c := range state.Columns {
			if c.Enabled != want[c.Key] {
				state = state.ToggleColumn(c.Key)
			}
		}
	}
	return state, nil
}
