package calculation

import (
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	two                  = decimal.NewFromInt(2)
	baseAvgRiskNumber    = decimal.NewFromFloat(6.8)
	baseRiskExposureBn   = decimal.NewFromFloat(1.2)
	noiChangePerMultiple = decimal.NewFromInt(2)
)

// clampPercent bounds a share to [0, 100]
func clampPercent(v decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(hundred, v))
}

// AdjustRegions shifts each region's risk mix under multiplier m. High risk
// grows with m; medium and low shrink by (2-m). Every share stays within
// [0, 100]. The input slice is not modified.
func AdjustRegions(regions []domain.RegionBreakdown, m decimal.Decimal) []domain.RegionBreakdown {
	out := make([]domain.RegionBreakdown, len(regions))
	inverse := two.Sub(m)
	for i, r := range regions {
		r.HighRisk = clampPercent(r.HighRisk.Mul(m))
		r.MediumRisk = clampPercent(r.MediumRisk.Mul(inverse))
		r.LowRisk = clampPercent(r.LowRisk.Mul(inverse))
		out[i] = r
	}
	return out
}

// AdjustPortfolioTrend scales the portfolio trend series with PortfolioSensitivity
func AdjustPortfolioTrend(series []domain.TimeSeriesPoint, m decimal.Decimal) []domain.TimeSeriesPoint {
	return ApplyProfile(series, m, PortfolioSensitivity)
}

// AdjustPortfolioMetrics recomputes the scenario and payment dependent KPI
// cards. Total properties and portfolio value carry through from base.
func AdjustPortfolioMetrics(base domain.PortfolioMetrics, m decimal.Decimal, payment domain.PaymentInput) (domain.PortfolioMetrics, error) {
	pm, err := PortfolioPayment(payment)
	if err != nil {
		return domain.PortfolioMetrics{}, err
	}
	sign := "+"
	if m.GreaterThan(one) {
		sign = "-"
	}
	out := base
	out.AvgRiskNumber = baseAvgRiskNumber.Mul(m).StringFixed(1)
	out.AvgNOIChange = sign + m.Sub(one).Mul(noiChangePerMultiple).Abs().StringFixed(1) + "%"
	out.RiskExposure = "$" + baseRiskExposureBn.Mul(m).StringFixed(1) + "B"
	out.AvgDSCR = pm.AvgDSCR
	out.LTVDirection = pm.LTVDirection
	return out, nil
}

// BandShares fills in each band's share of the total value, in percent rounded
// to one decimal. All shares are zero when the total is zero.
func BandShares(bands []domain.RiskBand) []domain.RiskBand {
	out := append([]domain.RiskBand(nil), bands...)
	total := decimal.Zero
	for _, b := range out {
		total = total.Add(b.Value)
	}
	for i := range out {
		if total.IsZero() {
			out[i].Share = decimal.Zero
			continue
		}
		out[i].Share = out[i].Value.Div(total).Mul(hundred).Round(1)
	}
	return out
}

// EnabledColumns returns the columns currently switched on, in table order
func EnabledColumns(columns []domain.TableColumn) []domain.TableColumn {
	var out []domain.TableColumn
	for _, c := range columns {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}
