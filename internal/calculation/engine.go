package calculation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/climatelens/risk-analytics/internal/catalog"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/navigation"
	money "github.com/climatelens/risk-analytics/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultAsset is shown when an analysis is opened without a property selection
var DefaultAsset = domain.SelectedAsset{ID: 1, Address: "123 Bay Street, Toronto, ON"}

// DefaultAssetValue is displayed when no form data carries a property value
var DefaultAssetValue = money.NewMoney(45_000_000)

// Energy intensity table constants, kWh/m²/yr
const (
	energyTableRows     = 5
	energyBaseIntensity = 85
	energyRowStep       = 5
	energyIndustryLevel = 95
	energyAverageStep   = 2.5
)

var ErrNoPropertiesSelected = errors.New("no properties selected")

// AnalysisRequest selects the inputs of an asset analysis
type AnalysisRequest struct {
	PropertyIDs    []int
	FormData       map[int]domain.PropertyFormData
	Scenario       domain.ScenarioInput
	Payment        domain.PaymentInput
	ShowBenchmark  bool
	ExpandedCharts bool
}

// PortfolioRequest selects the inputs of a portfolio overview
type PortfolioRequest struct {
	Scenario    domain.ScenarioInput
	Payment     domain.PaymentInput
	Columns     []domain.TableColumn // nil selects the default columns
	ChartView   string
	BreakdownBy string
}

// ReportRequest selects which views a report bundles
type ReportRequest struct {
	Asset     *AnalysisRequest
	Portfolio *PortfolioRequest
	Insights  bool
	Compare   bool
}

// AnalysisEngine builds every dashboard view from the catalog and reference data
type AnalysisEngine struct {
	Catalog   *catalog.Catalog
	Reference *catalog.Reference
	Scenarios *ScenarioRegistry
	Logger    Logger
}

// NewAnalysisEngine creates an engine over already loaded data. A nil registry
// holds only the named scenarios.
func NewAnalysisEngine(cat *catalog.Catalog, ref *catalog.Reference, scenarios *ScenarioRegistry) *AnalysisEngine {
	if scenarios == nil {
		scenarios = &ScenarioRegistry{}
	}
	return &AnalysisEngine{
		Catalog:   cat,
		Reference: ref,
		Scenarios: scenarios,
		Logger:    NopLogger{},
	}
}

// NewDefaultAnalysisEngine loads the embedded catalog and reference data
func NewDefaultAnalysisEngine(custom ...domain.ScenarioInput) (*AnalysisEngine, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	ref, err := catalog.LoadReference()
	if err != nil {
		return nil, err
	}
	scenarios, err := NewScenarioRegistry(custom...)
	if err != nil {
		return nil, fmt.Errorf("invalid custom scenario: %w", err)
	}
	return NewAnalysisEngine(cat, ref, scenarios), nil
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *AnalysisEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// AssetDetails builds the details step for the state's current property. The
// form comes from entered data, then from the catalog record, then from defaults.
func (e *AnalysisEngine) AssetDetails(ctx context.Context, s navigation.State) (*domain.AssetDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, ok := s.CurrentID()
	if !ok {
		return nil, ErrNoPropertiesSelected
	}
	details := &domain.AssetDetails{Current: s.Current, Total: len(s.PropertyIDs)}
	form, entered := s.Data[id]
	if p, found := e.Catalog.ByID(id); found {
		details.Property = &p
		if !entered {
			form = FormDataForProperty(p)
		}
	} else if !entered {
		e.Logger.Debugf("property %d not in catalog, using default form", id)
		form = DefaultFormData()
	}
	details.Form = form
	details.Insights = AnalyzeForm(form)
	_, details.NextURL = navigation.Next(s, form)
	_, details.BackURL = navigation.Back(s)
	return details, nil
}

// selectedAssets maps ids to catalog addresses, "Property <id>" when unknown
func (e *AnalysisEngine) selectedAssets(ids []int) []domain.SelectedAsset {
	if len(ids) == 0 {
		return []domain.SelectedAsset{DefaultAsset}
	}
	out := make([]domain.SelectedAsset, 0, len(ids))
	for _, id := range ids {
		addr := "Property " + strconv.Itoa(id)
		if p, ok := e.Catalog.ByID(id); ok {
			addr = p.Address
		}
		out = append(out, domain.SelectedAsset{ID: id, Address: addr})
	}
	return out
}

// totalAssetValue sums every entered property value
func totalAssetValue(data map[int]domain.PropertyFormData) money.Money {
	total := money.Zero()
	for _, f := range data {
		total = total.Add(money.NewMoneyFromDecimal(FormPropertyValue(f)))
	}
	return total
}

func mean(values []decimal.Decimal) (decimal.Decimal, bool) {
	if len(values) == 0 {
		return decimal.Zero, false
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values)))), true
}

// baseline returns the LTV/DSCR pair the payment structure adjusts. Entered
// form data wins over catalog figures, which win over the reference defaults.
func (e *AnalysisEngine) baseline(ids []int, data map[int]domain.PropertyFormData) (decimal.Decimal, decimal.Decimal) {
	var formLTV, formDSCR, catLTV, catDSCR []decimal.Decimal
	for _, id := range ids {
		if f, ok := data[id]; ok {
			if v := FormLTV(f); !v.IsZero() {
				formLTV = append(formLTV, v)
			}
			if v := FormDSCR(f); !v.IsZero() {
				formDSCR = append(formDSCR, v)
			}
		}
		if p, ok := e.Catalog.ByID(id); ok {
			catLTV = append(catLTV, p.LTV)
			catDSCR = append(catDSCR, p.DSCR)
		}
	}
	ltv, ok := mean(formLTV)
	if !ok {
		if ltv, ok = mean(catLTV); !ok {
			ltv = DefaultBaseLTV
		}
	}
	dscr, ok := mean(formDSCR)
	if !ok {
		if dscr, ok = mean(catDSCR); !ok {
			dscr = DefaultBaseDSCR
		}
	}
	return ltv, dscr
}

// EnergyIntensity builds the per-asset energy table for the selected assets
func EnergyIntensity(assets []domain.SelectedAsset) domain.EnergyIntensityTable {
	rows := make([]domain.EnergyIntensityRow, 0, energyTableRows)
	for i, a := range assets {
		if i == energyTableRows {
			break
		}
		short, _, _ := strings.Cut(a.Address, ",")
		rows = append(rows, domain.EnergyIntensityRow{Asset: short, Intensity: energyBaseIntensity + i*energyRowStep})
	}
	avg := decimal.NewFromInt(energyBaseIntensity).
		Add(decimal.NewFromInt(int64(len(assets))).Mul(decimal.NewFromFloat(energyAverageStep))).
		Round(0)
	return domain.EnergyIntensityTable{Rows: rows, Average: int(avg.IntPart()), Benchmark: energyIndustryLevel}
}

// financialMetrics assembles the KPI cards
func financialMetrics(value money.Money, kpis ScenarioKPIs, adj domain.LoanAdjustment) domain.FinancialMetrics {
	return domain.FinancialMetrics{
		AssetValue:     value.Decimal,
		RiskScore:      kpis.RiskScore,
		AnnualRiskCost: kpis.AnnualRiskCost,
		NetSavings:     kpis.NetSavings,
		LTV:            adj.LTV,
		DSCR:           adj.DSCR,
		Display: domain.FinancialDisplay{
			AssetValue:     value.FormatMillions(0),
			RiskScore:      kpis.RiskScore.StringFixed(1) + "/10",
			AnnualRiskCost: money.FromMillions(kpis.AnnualRiskCost).FormatMillions(1),
			NetSavings:     money.FromMillions(kpis.NetSavings).FormatMillions(1),
			LTV:            adj.LTV.StringFixed(1) + "%",
			DSCR:           adj.DSCR.StringFixed(2),
		},
	}
}

// AnalyzeAssets runs the scenario and payment structure models for a selection of assets
func (e *AnalysisEngine) AnalyzeAssets(ctx context.Context, req AnalysisRequest) (*domain.AssetAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Payment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payment structure: %w", err)
	}
	assets := e.selectedAssets(req.PropertyIDs)

	value := totalAssetValue(req.FormData)
	if !value.IsPositive() {
		value = DefaultAssetValue
	}

	res := EvaluateScenario(e.Reference.BaseAssetSeries(), req.Scenario)
	baseLTV, baseDSCR := e.baseline(req.PropertyIDs, req.FormData)
	adj, err := ApplyPayment(baseLTV, baseDSCR, req.Payment)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("asset analysis: %d assets, scenario %s, multiplier %s, ltv %s, dscr %s",
		len(assets), req.Scenario.Key(), res.Multiplier, adj.LTV.StringFixed(2), adj.DSCR.StringFixed(3))

	return &domain.AssetAnalysis{
		Scenario:        req.Scenario,
		ScenarioLabel:   req.Scenario.Label(),
		Multiplier:      res.Multiplier,
		Payment:         req.Payment,
		SelectedAssets:  assets,
		Series:          res.Series,
		ShowBenchmark:   req.ShowBenchmark,
		ExpandedCharts:  req.ExpandedCharts,
		Metrics:         financialMetrics(value, res.KPIs, adj),
		EnergyIntensity: EnergyIntensity(assets),
	}, nil
}

// PortfolioOverview builds the portfolio view under a scenario and payment structure
func (e *AnalysisEngine) PortfolioOverview(ctx context.Context, req PortfolioRequest) (*domain.PortfolioOverview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Payment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payment structure: %w", err)
	}
	chart := req.ChartView
	switch chart {
	case "":
		chart = domain.ChartPropertyCount
	case domain.ChartPropertyCount, domain.ChartDollarValue:
	default:
		return nil, fmt.Errorf("unknown chart view %q", req.ChartView)
	}
	breakdown := req.BreakdownBy
	if breakdown == "" {
		breakdown = domain.BreakdownOptions[0].Value
	} else if !domain.HasOption(domain.BreakdownOptions, breakdown) {
		return nil, fmt.Errorf("unknown breakdown %q", req.BreakdownBy)
	}
	columns := req.Columns
	if columns == nil {
		columns = e.Reference.BaseColumns()
	}

	m := ComputeMultiplier(req.Scenario)
	metrics, err := AdjustPortfolioMetrics(e.Reference.PortfolioMetrics, m, req.Payment)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("portfolio overview: scenario %s, multiplier %s", req.Scenario.Key(), m)

	return &domain.PortfolioOverview{
		Scenario:      req.Scenario,
		ScenarioLabel: req.Scenario.Label(),
		Multiplier:    m,
		Payment:       req.Payment,
		ChartView:     chart,
		BreakdownBy:   breakdown,
		Regions:       AdjustRegions(e.Reference.BaseRegions(), m),
		Trend:         AdjustPortfolioTrend(e.Reference.BasePortfolioTrend(), m),
		Metrics:       metrics,
		Columns:       columns,
		Holdings:      e.Reference.BaseHoldings(),
	}, nil
}

// KeyInsights returns the insight summary with band shares filled in
func (e *AnalysisEngine) KeyInsights(ctx context.Context) (*domain.KeyInsights, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in := e.Reference.BaseInsights()
	in.Distribution = BandShares(in.Distribution)
	for i := range in.Regions {
		in.Regions[i].Bands = BandShares(in.Regions[i].Bands)
	}
	return &in, nil
}

// BuildReport runs every requested view and bundles them for the output formatters
func (e *AnalysisEngine) BuildReport(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	report := &domain.Report{ID: idFunc(), GeneratedAt: nowFunc()}
	var scenario domain.ScenarioInput
	var payment domain.PaymentInput

	if req.Asset != nil {
		a, err := e.AnalyzeAssets(ctx, *req.Asset)
		if err != nil {
			return nil, fmt.Errorf("asset analysis failed: %w", err)
		}
		report.Asset = a
		scenario, payment = req.Asset.Scenario, req.Asset.Payment
	}
	if req.Portfolio != nil {
		p, err := e.PortfolioOverview(ctx, *req.Portfolio)
		if err != nil {
			return nil, fmt.Errorf("portfolio overview failed: %w", err)
		}
		report.Portfolio = p
		if req.Asset == nil {
			scenario, payment = req.Portfolio.Scenario, req.Portfolio.Payment
		}
	}
	if req.Insights {
		in, err := e.KeyInsights(ctx)
		if err != nil {
			return nil, err
		}
		report.Insights = in
	}
	if req.Compare {
		report.Comparison = CompareScenarios(e.Reference.BaseAssetSeries(), e.comparisonSet(scenario))
	}
	report.Assumptions = ModelAssumptions(scenario, payment)
	return report, nil
}

// comparisonSet lists the registry scenarios plus the selected one when it is an unsaved custom
func (e *AnalysisEngine) comparisonSet(selected domain.ScenarioInput) []domain.ScenarioInput {
	inputs := e.Scenarios.List()
	if selected.Kind != domain.ScenarioCustom {
		return inputs
	}
	for _, in := range inputs {
		if in.Key() == selected.Key() {
			return inputs
		}
	}
	return append(inputs, selected)
}
