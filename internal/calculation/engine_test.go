package calculation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/navigation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, custom ...domain.ScenarioInput) *AnalysisEngine {
	t.Helper()
	e, err := NewDefaultAnalysisEngine(custom...)
	require.NoError(t, err)
	return e
}

func TestAnalyzeAssetsDefaults(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.AnalyzeAssets(context.Background(), AnalysisRequest{Scenario: domain.Baseline(), Payment: domain.Upfront()})
	require.NoError(t, err)

	assert.Equal(t, []domain.SelectedAsset{DefaultAsset}, a.SelectedAssets)
	assert.Equal(t, "$45M", a.Metrics.Display.AssetValue)
	assert.Equal(t, "7.2/10", a.Metrics.Display.RiskScore)
	assert.Equal(t, "$2.1M", a.Metrics.Display.AnnualRiskCost)
	assert.Equal(t, "$8.4M", a.Metrics.Display.NetSavings)
	assert.Equal(t, "71.1%", a.Metrics.Display.LTV)
	assert.Equal(t, "2.21", a.Metrics.Display.DSCR)
	assert.Equal(t, "Baseline", a.ScenarioLabel)

	require.Len(t, a.EnergyIntensity.Rows, 1)
	assert.Equal(t, "123 Bay Street", a.EnergyIntensity.Rows[0].Asset)
	assert.Equal(t, 85, a.EnergyIntensity.Rows[0].Intensity)
	assert.Equal(t, 88, a.EnergyIntensity.Average)
	assert.Equal(t, 95, a.EnergyIntensity.Benchmark)
}

func TestAnalyzeAssetsCatalogBaselineWithLoan(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.AnalyzeAssets(context.Background(), AnalysisRequest{
		PropertyIDs: []int{1},
		Scenario:    domain.Baseline(),
		Payment:     domain.DefaultLoan(),
	})
	require.NoError(t, err)
	assertDecimal(t, 71.22, a.Metrics.LTV)
	assertDecimal(t, 2.114, a.Metrics.DSCR)
	assert.Equal(t, "71.2%", a.Metrics.Display.LTV)
	assert.Equal(t, "2.11", a.Metrics.Display.DSCR)
}

func TestAnalyzeAssetsFormDataBaseline(t *testing.T) {
	e := newTestEngine(t)
	data := map[int]domain.PropertyFormData{
		1: {LoanValue: "30000000", PropertyValue: "50000000", NetOperatingIncome: "3000000", AnnualDebtPayment: "1500000"},
		5: {LoanValue: "40000000", PropertyValue: "50000000", NetOperatingIncome: "2000000", AnnualDebtPayment: "2000000"},
	}
	req := AnalysisRequest{PropertyIDs: []int{1, 5}, FormData: data, Scenario: domain.Baseline(), Payment: domain.Upfront()}

	a, err := e.AnalyzeAssets(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "$100M", a.Metrics.Display.AssetValue)
	assert.Equal(t, "70.0%", a.Metrics.Display.LTV)
	assert.Equal(t, "1.50", a.Metrics.Display.DSCR)
	assert.Equal(t, "123 Bay Street, Toronto, ON", a.SelectedAssets[0].Address)

	req.Payment = domain.DefaultLoan()
	a, err = e.AnalyzeAssets(context.Background(), req)
	require.NoError(t, err)
	assertDecimal(t, 70.12, a.Metrics.LTV)
	assertDecimal(t, 1.404, a.Metrics.DSCR)
}

func TestAnalyzeAssetsScenario(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.AnalyzeAssets(context.Background(), AnalysisRequest{PropertyIDs: []int{999}, Scenario: domain.Delayed(), Payment: domain.Upfront()})
	require.NoError(t, err)

	assert.Equal(t, "Property 999", a.SelectedAssets[0].Address)
	assertDecimal(t, 1.3, a.Multiplier)
	assertDecimal(t, 9.36, a.Series[0].Risk)
	assert.Equal(t, "9.4/10", a.Metrics.Display.RiskScore)
	assert.Equal(t, "$2.7M", a.Metrics.Display.AnnualRiskCost)
	assert.Equal(t, "$6.5M", a.Metrics.Display.NetSavings)
	// unknown ids fall back to the reference LTV/DSCR
	assert.Equal(t, "71.1%", a.Metrics.Display.LTV)
}

func TestAnalyzeAssetsEnergyTableCapsRows(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.AnalyzeAssets(context.Background(), AnalysisRequest{PropertyIDs: []int{1, 2, 3, 4, 5, 6}})
	require.NoError(t, err)
	require.Len(t, a.EnergyIntensity.Rows, 5)
	assert.Equal(t, 105, a.EnergyIntensity.Rows[4].Intensity)
	assert.Equal(t, 100, a.EnergyIntensity.Average)
}

func TestAnalyzeAssetsRejectsInvalidPayment(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AnalyzeAssets(context.Background(), AnalysisRequest{Payment: domain.Loan(80, 0, 5.5)})
	assert.ErrorIs(t, err, domain.ErrInvalidLoanTerm)

	_, err = e.AnalyzeAssets(context.Background(), AnalysisRequest{Payment: domain.Loan(20, 25, 5.5)})
	assert.ErrorIs(t, err, domain.ErrInvalidCoverage)
}

func TestAnalyzeAssetsHonoursContext(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.AnalyzeAssets(ctx, AnalysisRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssetDetails(t *testing.T) {
	e := newTestEngine(t)
	s := navigation.NewState(1, 5)

	det, err := e.AssetDetails(context.Background(), s)
	require.NoError(t, err)
	require.NotNil(t, det.Property)
	assert.Equal(t, 1, det.Property.ID)
	assert.Equal(t, 1, det.Current)
	assert.Equal(t, 2, det.Total)
	assert.Equal(t, "45000000", det.Form.PropertyValue)
	assert.Equal(t, "Moderate", det.Insights.LTVStatus)
	assert.True(t, strings.HasPrefix(det.NextURL, "/asset/details?properties=1,5&current=2&data="), det.NextURL)
	assert.Equal(t, navigation.SearchPath, det.BackURL)
}

func TestAssetDetailsPrefersEnteredData(t *testing.T) {
	e := newTestEngine(t)
	s := navigation.NewState(1)
	s.Data[1] = domain.PropertyFormData{PropertyValue: "1", LoanValue: "2"}

	det, err := e.AssetDetails(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "1", det.Form.PropertyValue)
	assert.Equal(t, "High Risk", det.Insights.LTVStatus)
	assert.True(t, strings.HasPrefix(det.NextURL, navigation.AnalysisPath), det.NextURL)
}

func TestAssetDetailsWithoutSelection(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AssetDetails(context.Background(), navigation.NewState())
	assert.ErrorIs(t, err, ErrNoPropertiesSelected)
}

func TestPortfolioOverview(t *testing.T) {
	e := newTestEngine(t)
	p, err := e.PortfolioOverview(context.Background(), PortfolioRequest{Scenario: domain.Delayed(), Payment: domain.DefaultLoan()})
	require.NoError(t, err)

	assert.Equal(t, domain.ChartPropertyCount, p.ChartView)
	assert.Equal(t, "province", p.BreakdownBy)
	assert.Equal(t, "8.8", p.Metrics.AvgRiskNumber)
	assert.Equal(t, "-0.18", p.Metrics.AvgDSCR)
	assert.Equal(t, LTVIncreasing, p.Metrics.LTVDirection)
	assertDecimal(t, 19.5, p.Regions[0].HighRisk)
	assertDecimal(t, 29.321, p.Trend[0].NOI)
	assert.Len(t, p.Columns, 8)
	assert.Len(t, p.Holdings, 4)
}

func TestPortfolioOverviewRejectsUnknownViews(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.PortfolioOverview(context.Background(), PortfolioRequest{ChartView: "pie"})
	assert.Error(t, err)
	_, err = e.PortfolioOverview(context.Background(), PortfolioRequest{BreakdownBy: "galaxy"})
	assert.Error(t, err)

	p, err := e.PortfolioOverview(context.Background(), PortfolioRequest{ChartView: domain.ChartDollarValue, BreakdownBy: "energy"})
	require.NoError(t, err)
	assert.Equal(t, "energy", p.BreakdownBy)
}

func TestKeyInsightsShares(t *testing.T) {
	e := newTestEngine(t)
	in, err := e.KeyInsights(context.Background())
	require.NoError(t, err)
	assertDecimal(t, 30.4, in.Distribution[0].Share)
	require.Len(t, in.Regions, 3)
	for _, r := range in.Regions {
		require.Len(t, r.Bands, 3)
		assert.False(t, r.Bands[0].Share.IsZero(), r.Region)
	}
	// reference data keeps no shares
	assert.True(t, e.Reference.Insights.Distribution[0].Share.IsZero())
}

func TestBuildReport(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	SetIDFunc(func() string { return "report-1" })
	t.Cleanup(func() {
		SetNowFunc(time.Now)
		SetIDFunc(uuid.NewString)
	})

	saved := domain.Custom("High Carbon", 80, 20, 70)
	e := newTestEngine(t, saved)
	unsaved := domain.Custom("Ad hoc", 60, 10, 50)

	r, err := e.BuildReport(context.Background(), ReportRequest{
		Asset:     &AnalysisRequest{Scenario: unsaved, Payment: domain.DefaultLoan()},
		Portfolio: &PortfolioRequest{Scenario: unsaved},
		Insights:  true,
		Compare:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "report-1", r.ID)
	assert.Equal(t, fixed, r.GeneratedAt)
	require.NotNil(t, r.Asset)
	require.NotNil(t, r.Portfolio)
	require.NotNil(t, r.Insights)

	keys := make([]string, 0, len(r.Comparison))
	for _, row := range r.Comparison {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []string{"baseline", "aggressive", "delayed", "custom-High Carbon", "custom-Ad hoc"}, keys)
	assert.Contains(t, r.Assumptions[0], "Ad hoc (Custom)")
	assert.Contains(t, strings.Join(r.Assumptions, "\n"), "80% coverage over 25 years")
}

func TestBuildReportPropagatesErrors(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.BuildReport(context.Background(), ReportRequest{Asset: &AnalysisRequest{Payment: domain.Loan(80, 0, 5.5)}})
	assert.ErrorIs(t, err, domain.ErrInvalidLoanTerm)
}

func TestAnalyzeAssetsHugeExponentFormValue(t *testing.T) {
	e := newTestEngine(t)
	form := DefaultFormData()
	form.PropertyValue = "1e200000000"
	req := AnalysisRequest{
		PropertyIDs: []int{1},
		FormData:    map[int]domain.PropertyFormData{1: form},
		Scenario:    domain.Baseline(),
		Payment:     domain.DefaultLoan(),
	}

	type result struct {
		a   *domain.AssetAnalysis
		err error
	}
	done := make(chan result, 1)
	go func() {
		a, err := e.AnalyzeAssets(context.Background(), req)
		done <- result{a, err}
	}()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, "$45M", r.a.Metrics.Display.AssetValue)
	case <-time.After(5 * time.Second):
		t.Fatal("AnalyzeAssets did not finish for an oversized property value")
	}
}
