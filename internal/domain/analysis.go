package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialMetrics are the headline KPIs of an asset analysis
type FinancialMetrics struct {
	AssetValue     decimal.Decimal  `json:"asset_value"`      // dollars
	RiskScore      decimal.Decimal  `json:"risk_score"`       // 0-10 scale, not clamped
	AnnualRiskCost decimal.Decimal  `json:"annual_risk_cost"` // millions
	NetSavings     decimal.Decimal  `json:"net_savings"`      // millions
	LTV            decimal.Decimal  `json:"ltv"`              // percent
	DSCR           decimal.Decimal  `json:"dscr"`
	Display        FinancialDisplay `json:"display"`
}

// FinancialDisplay holds the KPI values as rendered on the KPI cards
type FinancialDisplay struct {
	AssetValue     string `json:"asset_value"`
	RiskScore      string `json:"risk_score"`
	AnnualRiskCost string `json:"annual_risk_cost"`
	NetSavings     string `json:"net_savings"`
	LTV            string `json:"ltv"`
	DSCR           string `json:"dscr"`
}

// SelectedAsset is an asset included in a multi-asset analysis
type SelectedAsset struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// EnergyIntensityRow is one asset's modeled energy use intensity
type EnergyIntensityRow struct {
	Asset     string `json:"asset"`
	Intensity int    `json:"intensity"` // kWh/m²/yr
}

// EnergyIntensityTable lists per-asset intensities and the portfolio average
type EnergyIntensityTable struct {
	Rows      []EnergyIntensityRow `json:"rows"`
	Average   int                  `json:"average"`
	Benchmark int                  `json:"benchmark"`
}

// AssetAnalysis is the multi-asset climate risk analysis view
type AssetAnalysis struct {
	Scenario        ScenarioInput        `json:"scenario"`
	ScenarioLabel   string               `json:"scenario_label"`
	Multiplier      decimal.Decimal      `json:"multiplier"`
	Payment         PaymentInput         `json:"payment"`
	SelectedAssets  []SelectedAsset      `json:"selected_assets"`
	Series          []TimeSeriesPoint    `json:"series"`
	ShowBenchmark   bool                 `json:"show_benchmark"`
	ExpandedCharts  bool                 `json:"expanded_charts"`
	Metrics         FinancialMetrics     `json:"metrics"`
	EnergyIntensity EnergyIntensityTable `json:"energy_intensity"`
}

// FormInsights are the auto-calculated ratios and ratings shown beside the details form
type FormInsights struct {
	LTV                  decimal.Decimal `json:"ltv"`
	DSCR                 decimal.Decimal `json:"dscr"`
	LTVDisplay           string          `json:"ltv_display"`
	DSCRDisplay          string          `json:"dscr_display"`
	LTVStatus            string          `json:"ltv_status"`
	DSCRStatus           string          `json:"dscr_status"`
	EnergyIntensity      int             `json:"energy_intensity"`
	EnergyBenchmark      string          `json:"energy_benchmark"`
	ImprovementPotential int             `json:"improvement_potential"`
}

// AssetDetails is one step of the asset details wizard
type AssetDetails struct {
	Current  int              `json:"current"` // 1-based
	Total    int              `json:"total"`
	Property *PropertyRecord  `json:"property,omitempty"`
	Form     PropertyFormData `json:"form"`
	Insights FormInsights     `json:"insights"`
	NextURL  string           `json:"next_url"`
	BackURL  string           `json:"back_url"`
}

// Portfolio chart metrics
const (
	ChartPropertyCount = "propertyCount"
	ChartDollarValue   = "dollarValue"
)

// BreakdownOptions are the groupings offered for the portfolio breakdown chart
var BreakdownOptions = []Option{
	{"province", "Province"},
	{"country", "Country"},
	{"certification", "Green Certification"},
	{"lob", "LOB / Sub-LOB"},
	{"efficiency", "Efficiency Range"},
	{"energy", "Energy Source"},
}

// RegionBreakdown is one region's share of the portfolio and its risk mix (percent)
type RegionBreakdown struct {
	Category      string          `yaml:"category" json:"category"`
	PropertyCount int             `yaml:"property_count" json:"property_count"`
	DollarValue   decimal.Decimal `yaml:"dollar_value" json:"dollar_value"` // billions
	HighRisk      decimal.Decimal `yaml:"high_risk" json:"high_risk"`
	MediumRisk    decimal.Decimal `yaml:"medium_risk" json:"medium_risk"`
	LowRisk       decimal.Decimal `yaml:"low_risk" json:"low_risk"`
}

// PortfolioMetrics are the portfolio KPI cards, already formatted for display
type PortfolioMetrics struct {
	TotalProperties string `yaml:"total_properties" json:"total_properties"`
	PortfolioValue  string `yaml:"portfolio_value" json:"portfolio_value"`
	AvgRiskNumber   string `yaml:"avg_risk_number" json:"avg_risk_number"`
	AvgNOIChange    string `yaml:"avg_noi_change" json:"avg_noi_change"`
	AvgDSCR         string `yaml:"avg_dscr" json:"avg_dscr"`
	LTVDirection    string `yaml:"ltv_direction" json:"ltv_direction"`
	RiskExposure    string `yaml:"risk_exposure" json:"risk_exposure"`
}

// TableColumn is a toggleable column of the holdings table
type TableColumn struct {
	Key     string `yaml:"key" json:"key"`
	Label   string `yaml:"label" json:"label"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// HoldingRow is one property row of the portfolio holdings table
type HoldingRow struct {
	Address          string `yaml:"address" json:"address"`
	Risk             string `yaml:"risk" json:"risk"`
	NOIChange        string `yaml:"noi_change" json:"noi_change"`
	DSCRChange       string `yaml:"dscr_change" json:"dscr_change"`
	LTVDirection     string `yaml:"ltv_direction" json:"ltv_direction"`
	Efficiency       string `yaml:"efficiency" json:"efficiency"`
	RetrofitCost     string `yaml:"retrofit_cost" json:"retrofit_cost"`
	RegulatoryShocks string `yaml:"regulatory_shocks" json:"regulatory_shocks"`
}

// Field returns the cell value for a column key
func (h HoldingRow) Field(key string) string {
	switch key {
	case "address":
		return h.Address
	case "risk":
		return h.Risk
	case "noiChange":
		return h.NOIChange
	case "dscrChange":
		return h.DSCRChange
	case "ltvDirection":
		return h.LTVDirection
	case "efficiency":
		return h.Efficiency
	case "retrofitCost":
		return h.RetrofitCost
	case "regulatoryShocks":
		return h.RegulatoryShocks
	}
	return ""
}

// PortfolioOverview is the portfolio-level view under a scenario and payment structure
type PortfolioOverview struct {
	Scenario      ScenarioInput     `json:"scenario"`
	ScenarioLabel string            `json:"scenario_label"`
	Multiplier    decimal.Decimal   `json:"multiplier"`
	Payment       PaymentInput      `json:"payment"`
	ChartView     string            `json:"chart_view"`
	BreakdownBy   string            `json:"breakdown_by"`
	Regions       []RegionBreakdown `json:"regions"`
	Trend         []TimeSeriesPoint `json:"trend"`
	Metrics       PortfolioMetrics  `json:"metrics"`
	Columns       []TableColumn     `json:"columns"`
	Holdings      []HoldingRow      `json:"holdings"`
}

// RiskBand is a slice of loan value by risk classification (millions)
type RiskBand struct {
	Name  string          `yaml:"name" json:"name"`
	Value decimal.Decimal `yaml:"value" json:"value"`
	Color string          `yaml:"color" json:"color"`
	Share decimal.Decimal `yaml:"-" json:"share"` // percent of the distribution total
}

// SummaryCard is a headline figure on the key insights page
type SummaryCard struct {
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
	Color string `yaml:"color" json:"color"`
}

// RegionalInsight is the expanded per-region risk distribution
type RegionalInsight struct {
	Region             string     `yaml:"region" json:"region"`
	Bands              []RiskBand `yaml:"bands" json:"bands"`
	AvgNOILoss         string     `yaml:"avg_noi_loss" json:"avg_noi_loss"`
	HighRiskDollars    string     `yaml:"high_risk_dollars" json:"high_risk_dollars"`
	LendingOpportunity string     `yaml:"lending_opportunity" json:"lending_opportunity"`
}

// RegionalHeadline is a regional portfolio tile of the landing page
type RegionalHeadline struct {
	Region             string `yaml:"region" json:"region"`
	TotalLoan          string `yaml:"total_loan" json:"total_loan"`
	NOILoss            string `yaml:"noi_loss" json:"noi_loss"`
	DefaultProbability string `yaml:"default_probability" json:"default_probability"`
	Driver             string `yaml:"driver,omitempty" json:"driver,omitempty"`
}

// KeyInsights is the portfolio-wide insight summary
type KeyInsights struct {
	Summary            []SummaryCard      `yaml:"summary" json:"summary"`
	Distribution       []RiskBand         `yaml:"distribution" json:"distribution"`
	DistributionRegion string             `yaml:"distribution_region" json:"distribution_region"`
	Regions            []RegionalInsight  `yaml:"regions" json:"regions"`
	Headlines          []RegionalHeadline `yaml:"headlines" json:"headlines"`
	Highlights         []string           `yaml:"highlights" json:"highlights"`
	HighRiskExposure   string             `yaml:"high_risk_exposure" json:"high_risk_exposure"`
	LendingOpportunity string             `yaml:"lending_opportunity" json:"lending_opportunity"`
}

// ScenarioComparisonRow summarises one scenario evaluated over a shared base series
type ScenarioComparisonRow struct {
	Key               string          `json:"key"`
	Label             string          `json:"label"`
	Multiplier        decimal.Decimal `json:"multiplier"`
	FinalYear         int             `json:"final_year"`
	FinalRisk         decimal.Decimal `json:"final_risk"`
	CumulativeRevenue decimal.Decimal `json:"cumulative_revenue"`
	CumulativeExpense decimal.Decimal `json:"cumulative_expense"`
	RiskScore         decimal.Decimal `json:"risk_score"`
	AnnualRiskCost    decimal.Decimal `json:"annual_risk_cost"`
	NetSavings        decimal.Decimal `json:"net_savings"`
}

// Report bundles the views rendered by output formatters. Nil sections are omitted.
type Report struct {
	ID          string                  `json:"id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Asset       *AssetAnalysis          `json:"asset,omitempty"`
	Portfolio   *PortfolioOverview      `json:"portfolio,omitempty"`
	Insights    *KeyInsights            `json:"insights,omitempty"`
	Comparison  []ScenarioComparisonRow `json:"comparison,omitempty"`
	Assumptions []string                `json:"assumptions,omitempty"`
}
