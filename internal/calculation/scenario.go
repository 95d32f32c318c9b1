package calculation

import (
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

// Named scenario multipliers
var (
	BaselineMultiplier   = decimal.NewFromInt(1)
	AggressiveMultiplier = decimal.NewFromFloat(0.8)
	DelayedMultiplier    = decimal.NewFromFloat(1.3)
)

// Baseline scalar KPIs of the reference asset. Cost and savings are in millions.
var (
	BaseRiskScore      = decimal.NewFromFloat(7.2)
	BaseAnnualRiskCost = decimal.NewFromFloat(2.1)
	BaseNetSavings     = decimal.NewFromFloat(8.4)
)

var (
	one     = decimal.NewFromInt(1)
	fifty   = decimal.NewFromInt(50)
	hundred = decimal.NewFromInt(100)
)

// ComputeMultiplier maps a scenario to its scalar multiplier. Custom scenarios
// are linear in their slider values and never clamped.
func ComputeMultiplier(input domain.ScenarioInput) decimal.Decimal {
	switch input.Kind {
	case domain.ScenarioAggressive:
		return AggressiveMultiplier
	case domain.ScenarioDelayed:
		return DelayedMultiplier
	case domain.ScenarioCustom:
		energy := input.EnergyPrices.Sub(fifty).Div(hundred)
		carbon := input.CarbonTax.Div(hundred)
		regulatory := input.RegulatoryIntensity.Sub(fifty).Div(hundred)
		return one.Add(energy).Add(carbon).Add(regulatory)
	default:
		return BaselineMultiplier
	}
}

// SensitivityProfile holds per-field coefficients k. A field scales by
// 1 + (m-1)*k, so k=1 scales with the multiplier and k=0 leaves it unchanged.
type SensitivityProfile struct {
	Risk            decimal.Decimal
	Benchmark       decimal.Decimal
	Revenue         decimal.Decimal
	Expenses        decimal.Decimal
	NOI             decimal.Decimal
	RevenuePayFines decimal.Decimal
	RevenueRetrofit decimal.Decimal
	ExpensePayFines decimal.Decimal
	ExpenseRetrofit decimal.Decimal
}

// AssetSensitivity is the per-asset coefficient table
var AssetSensitivity = SensitivityProfile{
	Risk:            decimal.NewFromInt(1),
	Expenses:        decimal.NewFromFloat(0.5),
	Revenue:         decimal.NewFromFloat(0.2),
	RevenuePayFines: decimal.NewFromFloat(0.1),
	RevenueRetrofit: decimal.NewFromFloat(0.3),
	ExpensePayFines: decimal.NewFromInt(1),
	ExpenseRetrofit: decimal.NewFromFloat(0.2),
}

// PortfolioSensitivity is the coefficient table for the portfolio trend series
var PortfolioSensitivity = SensitivityProfile{
	Risk:     decimal.NewFromInt(1),
	Expenses: decimal.NewFromFloat(0.5),
	Revenue:  decimal.NewFromFloat(0.2),
	NOI:      decimal.NewFromFloat(0.3),
}

// scale applies field * (1 + (m-1)*k). Zero coefficients return the field untouched.
func scale(v, m, k decimal.Decimal) decimal.Decimal {
	if k.IsZero() {
		return v
	}
	if k.Equal(one) {
		return v.Mul(m)
	}
	return v.Mul(one.Add(m.Sub(one).Mul(k)))
}

// ApplyProfile returns a new series with every point scaled by profile under
// multiplier m. The input series is never modified.
func ApplyProfile(series []domain.TimeSeriesPoint, m decimal.Decimal, profile SensitivityProfile) []domain.TimeSeriesPoint {
	out := domain.CloneSeries(series)
	if m.Equal(one) {
		return out
	}
	for i := range out {
		p := &out[i]
		p.Risk = scale(p.Risk, m, profile.Risk)
		p.Benchmark = scale(p.Benchmark, m, profile.Benchmark)
		p.Revenue = scale(p.Revenue, m, profile.Revenue)
		p.Expenses = scale(p.Expenses, m, profile.Expenses)
		p.NOI = scale(p.NOI, m, profile.NOI)
		p.RevenuePayFines = scale(p.RevenuePayFines, m, profile.RevenuePayFines)
		p.RevenueRetrofit = scale(p.RevenueRetrofit, m, profile.RevenueRetrofit)
		p.ExpensePayFines = scale(p.ExpensePayFines, m, profile.ExpensePayFines)
		p.ExpenseRetrofit = scale(p.ExpenseRetrofit, m, profile.ExpenseRetrofit)
	}
	return out
}

// ApplyMultiplier scales an asset series with AssetSensitivity
func ApplyMultiplier(series []domain.TimeSeriesPoint, m decimal.Decimal) []domain.TimeSeriesPoint {
	return ApplyProfile(series, m, AssetSensitivity)
}

// ScenarioKPIs are the scalar headline figures under a scenario
type ScenarioKPIs struct {
	RiskScore      decimal.Decimal `json:"risk_score"`
	AnnualRiskCost decimal.Decimal `json:"annual_risk_cost"` // millions
	NetSavings     decimal.Decimal `json:"net_savings"`      // millions
}

// RiskRatio is the factor by which the transformed series moved first-year risk.
// It falls back to m when the base series has no usable first point.
func RiskRatio(base, transformed []domain.TimeSeriesPoint, m decimal.Decimal) decimal.Decimal {
	if len(base) == 0 || len(transformed) == 0 || base[0].Risk.IsZero() {
		return m
	}
	return transformed[0].Risk.Div(base[0].Risk)
}

// DeriveKPIs computes the scalar KPIs from the risk ratio of the transformed
// series, so the cards always agree with the charted risk. Net savings is
// reported as zero when the ratio is zero.
func DeriveKPIs(base, transformed []domain.TimeSeriesPoint, m decimal.Decimal) ScenarioKPIs {
	r := RiskRatio(base, transformed, m)
	kpis := ScenarioKPIs{
		RiskScore:      BaseRiskScore.Mul(r),
		AnnualRiskCost: BaseAnnualRiskCost.Mul(r),
		NetSavings:     decimal.Zero,
	}
	if !r.IsZero() {
		kpis.NetSavings = BaseNetSavings.Div(r)
	}
	return kpis
}

// ScenarioResult is a scenario evaluated over a base series
type ScenarioResult struct {
	Input      domain.ScenarioInput
	Multiplier decimal.Decimal
	Series     []domain.TimeSeriesPoint
	KPIs       ScenarioKPIs
}

// EvaluateScenario runs the full scenario model over an asset series
func EvaluateScenario(series []domain.TimeSeriesPoint, input domain.ScenarioInput) ScenarioResult {
	m := ComputeMultiplier(input)
	transformed := ApplyMultiplier(series, m)
	return ScenarioResult{
		Input:      input,
		Multiplier: m,
		Series:     transformed,
		KPIs:       DeriveKPIs(series, transformed, m),
	}
}

// CompareScenarios evaluates every input over the same base series, in input order
func CompareScenarios(series []domain.TimeSeriesPoint, inputs []domain.ScenarioInput) []domain.ScenarioComparisonRow {
	rows := make([]domain.ScenarioComparisonRow, 0, len(inputs))
	for _, in := range inputs {
		res := EvaluateScenario(series, in)
		row := domain.ScenarioComparisonRow{
			Key:               in.Key(),
			Label:             in.Label(),
			Multiplier:        res.Multiplier,
			CumulativeRevenue: decimal.Zero,
			CumulativeExpense: decimal.Zero,
			RiskScore:         res.KPIs.RiskScore,
			AnnualRiskCost:    res.KPIs.AnnualRiskCost,
			NetSavings:        res.KPIs.NetSavings,
		}
		for _, p := range res.Series {
			row.CumulativeRevenue = row.CumulativeRevenue.Add(p.Revenue)
			row.CumulativeExpense = row.CumulativeExpense.Add(p.Expenses)
		}
		if n := len(res.Series); n > 0 {
			row.FinalYear = res.Series[n-1].Year
			row.FinalRisk = res.Series[n-1].Risk
		}
		rows = append(rows, row)
	}
	return rows
}
