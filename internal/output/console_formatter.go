package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/climatelens/risk-analytics/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CLIMATE RISK SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if r.ID != "" {
		fmt.Fprintf(&buf, "Report %s (%s)\n", r.ID, r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	}

	if a := r.Asset; a != nil {
		names := make([]string, 0, len(a.SelectedAssets))
		for _, s := range a.SelectedAssets {
			names = append(names, s.Address)
		}
		d := a.Metrics.Display
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Assets [%s]: %s\n", a.ScenarioLabel, strings.Join(names, "; "))
		fmt.Fprintf(&buf, "  Value=%s Risk=%s RiskCost=%s NetSavings=%s LTV=%s DSCR=%s\n",
			d.AssetValue, d.RiskScore, d.AnnualRiskCost, d.NetSavings, d.LTV, d.DSCR)
	}

	if p := r.Portfolio; p != nil {
		m := p.Metrics
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Portfolio [%s]: %s properties, %s\n", p.ScenarioLabel, m.TotalProperties, m.PortfolioValue)
		fmt.Fprintf(&buf, "  AvgRisk=%s NOIChange=%s Exposure=%s DSCRChange=%s LTV=%s\n",
			m.AvgRiskNumber, m.AvgNOIChange, m.RiskExposure, m.AvgDSCR, m.LTVDirection)
	}

	if in := r.Insights; in != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Risk distribution (%s):", in.DistributionRegion)
		for _, b := range in.Distribution {
			fmt.Fprintf(&buf, " %s %s%%", b.Name, b.Share.StringFixed(1))
		}
		fmt.Fprintln(&buf)
	}

	if len(r.Comparison) > 0 {
		fmt.Fprintln(&buf)
		for _, row := range r.Comparison {
			fmt.Fprintf(&buf, "%s: Multiplier=%s Risk%d=%s RiskScore=%s NetSavings=%s\n",
				row.Label, row.Multiplier.StringFixed(2), row.FinalYear, row.FinalRisk.StringFixed(2),
				row.RiskScore.StringFixed(1), FormatMillions(row.NetSavings))
		}
		rec := RecommendScenario(r.Comparison)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ risk %s / %s)\n", rec.Label, rec.RiskChange.StringFixed(2), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
