package calculation

import (
	"testing"

	"github.com/climatelens/risk-analytics/internal/catalog"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func assertDecimal(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "want %v got %s", want, got)
}

func baseSeries(t *testing.T) []domain.TimeSeriesPoint {
	t.Helper()
	ref, err := catalog.LoadReference()
	require.NoError(t, err)
	return ref.BaseAssetSeries()
}

func TestComputeMultiplierNamed(t *testing.T) {
	assertDecimal(t, 1, ComputeMultiplier(domain.Baseline()))
	assertDecimal(t, 0.8, ComputeMultiplier(domain.Aggressive()))
	assertDecimal(t, 1.3, ComputeMultiplier(domain.Delayed()))
	// an empty input behaves as baseline
	assertDecimal(t, 1, ComputeMultiplier(domain.ScenarioInput{}))
}

func TestComputeMultiplierCustom(t *testing.T) {
	tests := []struct {
		name                string
		energy, carbon, reg float64
		want                float64
	}{
		{"neutral sliders", 50, 0, 50, 1.0},
		{"mixed", 80, 20, 70, 1.7},
		{"all zero", 0, 0, 0, 0},
		{"beyond slider range", 150, 100, 150, 4},
		{"negative result", -50, 0, -50, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMultiplier(domain.Custom("x", tt.energy, tt.carbon, tt.reg))
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestApplyMultiplierIdentity(t *testing.T) {
	series := baseSeries(t)
	got := ApplyMultiplier(series, decimal.NewFromInt(1))
	assert.Equal(t, series, got)

	for _, profile := range []SensitivityProfile{AssetSensitivity, PortfolioSensitivity, {}} {
		assert.Equal(t, series, ApplyProfile(series, decimal.NewFromInt(1), profile))
	}
}

func TestApplyMultiplierScalesEachField(t *testing.T) {
	series := baseSeries(t)
	got := ApplyMultiplier(series, d(1.3))
	require.Len(t, got, len(series))

	p := got[0]
	assertDecimal(t, 9.36, p.Risk)
	assertDecimal(t, 2.645, p.Expenses)
	assertDecimal(t, 9.01, p.Revenue)
	assertDecimal(t, 8.446, p.RevenuePayFines)
	assertDecimal(t, 9.592, p.RevenueRetrofit)
	assertDecimal(t, 3.64, p.ExpensePayFines)
	assertDecimal(t, 1.908, p.ExpenseRetrofit)
	assertDecimal(t, 6.8, p.Benchmark)
}

func TestApplyMultiplierRiskIsProportional(t *testing.T) {
	series := baseSeries(t)
	for _, m := range []float64{0, 0.5, 0.8, 1.3, 2.75, -1} {
		got := ApplyMultiplier(series, d(m))
		for i := range series {
			if !got[i].Risk.Equal(series[i].Risk.Mul(d(m))) {
				t.Fatalf("m=%v year %d: risk %s, want %s", m, series[i].Year, got[i].Risk, series[i].Risk.Mul(d(m)))
			}
			if !got[i].Benchmark.Equal(series[i].Benchmark) {
				t.Fatalf("m=%v year %d: benchmark changed", m, series[i].Year)
			}
			if got[i].Year != series[i].Year {
				t.Fatalf("year changed: %d -> %d", series[i].Year, got[i].Year)
			}
		}
	}
}

func TestApplyMultiplierDoesNotMutateInput(t *testing.T) {
	series := baseSeries(t)
	before := domain.CloneSeries(series)
	_ = ApplyMultiplier(series, d(2))
	assert.Equal(t, before, series)
}

func TestPortfolioSensitivity(t *testing.T) {
	ref := catalog.MustLoadReference()
	got := AdjustPortfolioTrend(ref.BasePortfolioTrend(), d(1.3))
	assertDecimal(t, 8.84, got[0].Risk)
	assertDecimal(t, 47.912, got[0].Revenue)
	assertDecimal(t, 21.045, got[0].Expenses)
	assertDecimal(t, 29.321, got[0].NOI)
	// fine and retrofit fields are not part of the portfolio model
	assertDecimal(t, 8.2, got[0].RevenuePayFines)
	assertDecimal(t, 2.8, got[0].ExpensePayFines)
}

func TestDeriveKPIs(t *testing.T) {
	series := baseSeries(t)

	tests := []struct {
		name                   string
		input                  domain.ScenarioInput
		risk, cost, savings    float64
		riskDisplay, saveFixed string
	}{
		{"baseline", domain.Baseline(), 7.2, 2.1, 8.4, "7.2", "8.4"},
		{"aggressive", domain.Aggressive(), 5.76, 1.68, 10.5, "5.8", "10.5"},
		{"delayed", domain.Delayed(), 9.36, 2.73, 0, "9.4", "6.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluateScenario(series, tt.input)
			assertDecimal(t, tt.risk, res.KPIs.RiskScore)
			assertDecimal(t, tt.cost, res.KPIs.AnnualRiskCost)
			if tt.savings != 0 {
				assertDecimal(t, tt.savings, res.KPIs.NetSavings)
			}
			assert.Equal(t, tt.riskDisplay, res.KPIs.RiskScore.StringFixed(1))
			assert.Equal(t, tt.saveFixed, res.KPIs.NetSavings.StringFixed(1))
		})
	}
}

func TestDeriveKPIsZeroRatio(t *testing.T) {
	series := baseSeries(t)
	res := EvaluateScenario(series, domain.Custom("flat", 0, 0, 0))
	assert.True(t, res.Multiplier.IsZero())
	assert.True(t, res.KPIs.RiskScore.IsZero())
	assert.True(t, res.KPIs.NetSavings.IsZero(), "net savings must not divide by zero")
}

func TestRiskRatioFallsBackToMultiplier(t *testing.T) {
	flat := []domain.TimeSeriesPoint{{Year: 2024}}
	assertDecimal(t, 1.3, RiskRatio(flat, ApplyMultiplier(flat, d(1.3)), d(1.3)))
	assertDecimal(t, 0.8, RiskRatio(nil, nil, d(0.8)))
}

func TestCompareScenarios(t *testing.T) {
	series := baseSeries(t)
	rows := CompareScenarios(series, []domain.ScenarioInput{domain.Baseline(), domain.Aggressive(), domain.Delayed()})
	require.Len(t, rows, 3)

	assert.Equal(t, "baseline", rows[0].Key)
	assert.Equal(t, "Delayed Policy", rows[2].Label)
	assert.Equal(t, 2050, rows[0].FinalYear)
	assertDecimal(t, 14.2, rows[0].FinalRisk)
	assertDecimal(t, 18.46, rows[2].FinalRisk)
	assertDecimal(t, 82.0, rows[0].CumulativeRevenue)
	assert.True(t, rows[1].FinalRisk.LessThan(rows[0].FinalRisk))
}
