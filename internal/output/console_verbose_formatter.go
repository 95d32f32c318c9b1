package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

const rule = "================================================================================="

func (c ConsoleVerboseFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "DETAILED CLIMATE RISK ANALYSIS")
	fmt.Fprintln(&buf, rule)
	if r.ID != "" {
		fmt.Fprintf(&buf, "Report ID: %s\n", r.ID)
		fmt.Fprintf(&buf, "Generated: %s\n", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range reportAssumptions(r) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if r.Asset != nil {
		writeAssetSection(&buf, r.Asset)
	}
	if r.Portfolio != nil {
		writePortfolioSection(&buf, r.Portfolio)
	}
	if r.Insights != nil {
		writeInsightsSection(&buf, r.Insights)
	}
	if len(r.Comparison) > 0 {
		writeComparisonSection(&buf, r.Comparison)
	}
	return buf.Bytes(), nil
}

func heading(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))
}

func writeAssetSection(buf *bytes.Buffer, a *domain.AssetAnalysis) {
	heading(buf, "ASSET ANALYSIS: "+strings.ToUpper(a.ScenarioLabel))
	fmt.Fprintf(buf, "Scenario multiplier: %s\n", a.Multiplier.StringFixed(2))
	if a.Payment.IsLoan() {
		fmt.Fprintf(buf, "Payment: loan, %s%% coverage, %d years at %s%%\n", a.Payment.Coverage, a.Payment.TermYears, a.Payment.InterestRate)
	} else {
		fmt.Fprintln(buf, "Payment: upfront")
	}
	fmt.Fprintln(buf, "Selected assets:")
	for _, s := range a.SelectedAssets {
		fmt.Fprintf(buf, "  - %s\n", s.Address)
	}
	fmt.Fprintln(buf)

	d := a.Metrics.Display
	fmt.Fprintln(buf, "FINANCIAL METRICS:")
	fmt.Fprintf(buf, "  %-22s %s\n", "Asset Value:", d.AssetValue)
	fmt.Fprintf(buf, "  %-22s %s\n", "Risk Score:", d.RiskScore)
	fmt.Fprintf(buf, "  %-22s %s\n", "Annual Risk Cost:", d.AnnualRiskCost)
	fmt.Fprintf(buf, "  %-22s %s\n", "Net Savings:", d.NetSavings)
	fmt.Fprintf(buf, "  %-22s %s (%s)\n", "LTV:", d.LTV, calculation.LTVStatus(a.Metrics.LTV))
	fmt.Fprintf(buf, "  %-22s %s (%s)\n", "DSCR:", d.DSCR, calculation.DSCRStatus(a.Metrics.DSCR))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "RISK AND CASH FLOW PROJECTION ($M):")
	fmt.Fprintf(buf, "%-6s %8s %10s %10s %10s %12s %12s\n", "YEAR", "RISK", "BENCHMARK", "REVENUE", "EXPENSES", "PAY FINES", "RETROFIT")
	fmt.Fprintln(buf, strings.Repeat("-", 74))
	for _, p := range a.Series {
		benchmark := "-"
		if a.ShowBenchmark {
			benchmark = p.Benchmark.StringFixed(2)
		}
		fmt.Fprintf(buf, "%-6d %8s %10s %10s %10s %12s %12s\n", p.Year, p.Risk.StringFixed(2), benchmark,
			p.Revenue.StringFixed(2), p.Expenses.StringFixed(2), p.ExpensePayFines.StringFixed(2), p.ExpenseRetrofit.StringFixed(2))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "ENERGY INTENSITY (kWh/m²/yr):")
	for _, row := range a.EnergyIntensity.Rows {
		fmt.Fprintf(buf, "  %-30s %4d\n", row.Asset, row.Intensity)
	}
	fmt.Fprintf(buf, "  %-30s %4d\n", "Portfolio average", a.EnergyIntensity.Average)
	fmt.Fprintf(buf, "  %-30s %4d\n", "Industry benchmark", a.EnergyIntensity.Benchmark)
	fmt.Fprintln(buf)
}

func writePortfolioSection(buf *bytes.Buffer, p *domain.PortfolioOverview) {
	heading(buf, "PORTFOLIO OVERVIEW: "+strings.ToUpper(p.ScenarioLabel))
	m := p.Metrics
	fmt.Fprintf(buf, "  %-22s %s\n", "Total Properties:", m.TotalProperties)
	fmt.Fprintf(buf, "  %-22s %s\n", "Portfolio Value:", m.PortfolioValue)
	fmt.Fprintf(buf, "  %-22s %s\n", "Avg Risk:", m.AvgRiskNumber)
	fmt.Fprintf(buf, "  %-22s %s\n", "Avg NOI Change:", m.AvgNOIChange)
	fmt.Fprintf(buf, "  %-22s %s\n", "Avg DSCR Change:", m.AvgDSCR)
	fmt.Fprintf(buf, "  %-22s %s\n", "LTV:", m.LTVDirection)
	fmt.Fprintf(buf, "  %-22s %s\n", "Risk Exposure:", m.RiskExposure)
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "BREAKDOWN BY %s (%s):\n", strings.ToUpper(domain.OptionLabel(domain.BreakdownOptions, p.BreakdownBy)), p.ChartView)
	fmt.Fprintf(buf, "%-20s %6s %8s %8s %8s %8s\n", "REGION", "COUNT", "VALUE", "HIGH%", "MED%", "LOW%")
	fmt.Fprintln(buf, strings.Repeat("-", 64))
	for _, reg := range p.Regions {
		fmt.Fprintf(buf, "%-20s %6d %8s %8s %8s %8s\n", reg.Category, reg.PropertyCount, "$"+reg.DollarValue.StringFixed(1)+"B",
			reg.HighRisk.StringFixed(1), reg.MediumRisk.StringFixed(1), reg.LowRisk.StringFixed(1))
	}
	fmt.Fprintln(buf)

	cols := calculation.EnabledColumns(p.Columns)
	if len(cols) > 0 && len(p.Holdings) > 0 {
		fmt.Fprintln(buf, "HOLDINGS:")
		labels := make([]string, len(cols))
		for i, c := range cols {
			labels[i] = c.Label
		}
		fmt.Fprintf(buf, "  %s\n", strings.Join(labels, " | "))
		for _, h := range p.Holdings {
			cells := make([]string, len(cols))
			for i, c := range cols {
				cells[i] = h.Field(c.Key)
			}
			fmt.Fprintf(buf, "  %s\n", strings.Join(cells, " | "))
		}
		fmt.Fprintln(buf)
	}
}

func writeInsightsSection(buf *bytes.Buffer, in *domain.KeyInsights) {
	heading(buf, "KEY INSIGHTS")
	for _, c := range in.Summary {
		fmt.Fprintf(buf, "  %-30s %s\n", c.Title+":", c.Value)
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "RISK DISTRIBUTION (%s):\n", in.DistributionRegion)
	for _, b := range in.Distribution {
		fmt.Fprintf(buf, "  %-14s %8s %7s%%\n", b.Name, FormatMillions(b.Value), b.Share.StringFixed(1))
	}
	fmt.Fprintln(buf)
	for _, reg := range in.Regions {
		fmt.Fprintf(buf, "%s: avg NOI loss %s, high-risk %s, lending opportunity %s\n",
			reg.Region, reg.AvgNOILoss, reg.HighRiskDollars, reg.LendingOpportunity)
	}
	if len(in.Highlights) > 0 {
		fmt.Fprintln(buf)
		for _, h := range in.Highlights {
			fmt.Fprintf(buf, "• %s\n", h)
		}
	}
	fmt.Fprintln(buf)
}

func writeComparisonSection(buf *bytes.Buffer, rows []domain.ScenarioComparisonRow) {
	heading(buf, "SCENARIO COMPARISON")
	fmt.Fprintf(buf, "%-32s %6s %10s %10s %10s %10s\n", "SCENARIO", "MULT", "FINAL RISK", "RISK SCORE", "RISK COST", "SAVINGS")
	fmt.Fprintln(buf, strings.Repeat("-", 84))
	for _, row := range rows {
		fmt.Fprintf(buf, "%-32s %6s %10s %10s %10s %10s\n", row.Label, row.Multiplier.StringFixed(2), row.FinalRisk.StringFixed(2),
			row.RiskScore.StringFixed(1), FormatMillions(row.AnnualRiskCost), FormatMillions(row.NetSavings))
	}
	fmt.Fprintln(buf)

	rec := RecommendScenario(rows)
	fmt.Fprintln(buf, "SUMMARY & RECOMMENDATIONS")
	fmt.Fprintln(buf, "=========================")
	fmt.Fprintf(buf, "Lowest-risk scenario: %s\n", rec.Label)
	fmt.Fprintf(buf, "Final-year risk change vs baseline: %s (%s)\n", rec.RiskChange.StringFixed(2), FormatPercentage(rec.PercentageChange))
}
