package output

import (
	"sort"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the scenario with the lowest end-of-horizon risk.
type Recommendation struct {
	Key              string
	Label            string
	FinalRisk        decimal.Decimal
	RiskChange       decimal.Decimal // against baseline, negative is better
	PercentageChange decimal.Decimal
}

// RecommendScenario picks the compared scenario with the lowest final-year risk.
// Ties keep comparison order. The change is measured against the baseline row,
// or against the first row when baseline was not compared.
func RecommendScenario(rows []domain.ScenarioComparisonRow) Recommendation {
	if len(rows) == 0 {
		return Recommendation{}
	}
	base := rows[0].FinalRisk
	for _, r := range rows {
		if r.Key == string(domain.ScenarioBaseline) {
			base = r.FinalRisk
			break
		}
	}
	ranked := append([]domain.ScenarioComparisonRow(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].FinalRisk.LessThan(ranked[j].FinalRisk) })
	best := ranked[0]
	delta := best.FinalRisk.Sub(base)
	pct := decimal.Zero
	if !base.IsZero() {
		pct = delta.Div(base).Mul(decimalHundred)
	}
	return Recommendation{Key: best.Key, Label: best.Label, FinalRisk: best.FinalRisk, RiskChange: delta, PercentageChange: pct}
}
