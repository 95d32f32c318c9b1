package catalog

import (
	_ "embed"
	"fmt"

	"github.com/climatelens/risk-analytics/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/reference.yaml
var referenceSource []byte

// Reference holds the pre-computed baseline data behind every view.
// Accessors return copies so callers can never mutate the shared baseline.
type Reference struct {
	AssetSeries      []domain.TimeSeriesPoint `yaml:"asset_series"`
	PortfolioTrend   []domain.TimeSeriesPoint `yaml:"portfolio_trend"`
	Regions          []domain.RegionBreakdown `yaml:"regions"`
	PortfolioMetrics domain.PortfolioMetrics  `yaml:"portfolio_metrics"`
	Columns          []domain.TableColumn     `yaml:"columns"`
	Holdings         []domain.HoldingRow      `yaml:"holdings"`
	Insights         domain.KeyInsights       `yaml:"insights"`
}

// LoadReference parses the embedded reference data
func LoadReference() (*Reference, error) {
	return ParseReference(referenceSource)
}

// MustLoadReference is LoadReference for callers that treat a broken embed as fatal
func MustLoadReference() *Reference {
	r, err := LoadReference()
	if err != nil {
		panic(err)
	}
	return r
}

// ParseReference decodes and validates reference data from YAML
func ParseReference(data []byte) (*Reference, error) {
	var r Reference
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}
	if err := domain.ValidateSeries(r.AssetSeries); err != nil {
		return nil, fmt.Errorf("asset series: %w", err)
	}
	if err := domain.ValidateSeries(r.PortfolioTrend); err != nil {
		return nil, fmt.Errorf("portfolio trend: %w", err)
	}
	if len(r.AssetSeries) == 0 {
		return nil, fmt.Errorf("asset series is empty")
	}
	return &r, nil
}

// BaseAssetSeries returns a fresh copy of the asset baseline series
func (r *Reference) BaseAssetSeries() []domain.TimeSeriesPoint {
	return domain.CloneSeries(r.AssetSeries)
}

// BasePortfolioTrend returns a fresh copy of the portfolio trend series
func (r *Reference) BasePortfolioTrend() []domain.TimeSeriesPoint {
	return domain.CloneSeries(r.PortfolioTrend)
}

// BaseRegions returns a fresh copy of the regional breakdown
func (r *Reference) BaseRegions() []domain.RegionBreakdown {
	return append([]domain.RegionBreakdown(nil), r.Regions...)
}

// BaseColumns returns a fresh copy of the holdings table columns
func (r *Reference) BaseColumns() []domain.TableColumn {
	return append([]domain.TableColumn(nil), r.Columns...)
}

// BaseHoldings returns a fresh copy of the holdings table rows
func (r *Reference) BaseHoldings() []domain.HoldingRow {
	return append([]domain.HoldingRow(nil), r.Holdings...)
}

// BaseInsights returns a deep copy of the key insights
func (r *Reference) BaseInsights() domain.KeyInsights {
	in := r.Insights
	in.Summary = append([]domain.SummaryCard(nil), in.Summary...)
	in.Distribution = append([]domain.RiskBand(nil), in.Distribution...)
	in.Headlines = append([]domain.RegionalHeadline(nil), in.Headlines...)
	in.Highlights = append([]string(nil), in.Highlights...)
	regions := make([]domain.RegionalInsight, len(in.Regions))
	for i, ri := range in.Regions {
		ri.Bands = append([]domain.RiskBand(nil), ri.Bands...)
		regions[i] = ri
	}
	in.Regions = regions
	return in
}
