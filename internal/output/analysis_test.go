package output

import (
	"testing"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

func row(key string, finalRisk float64) domain.ScenarioComparisonRow {
	return domain.ScenarioComparisonRow{Key: key, Label: key, FinalRisk: decimal.NewFromFloat(finalRisk)}
}

func TestRecommendScenario_SelectsLowestFinalRisk(t *testing.T) {
	rec := RecommendScenario([]domain.ScenarioComparisonRow{
		row("baseline", 5),
		row("aggressive", 4),
		row("delayed", 6.5),
	})
	if rec.Key != "aggressive" {
		t.Fatalf("expected aggressive, got %q", rec.Key)
	}
	if !rec.RiskChange.Equal(decimal.NewFromInt(-1)) {
		t.Fatalf("risk change = %s, want -1", rec.RiskChange)
	}
	if !rec.PercentageChange.Equal(decimal.NewFromInt(-20)) {
		t.Fatalf("percentage change = %s, want -20", rec.PercentageChange)
	}
}

func TestRecommendScenario_WithoutBaseline(t *testing.T) {
	rec := RecommendScenario([]domain.ScenarioComparisonRow{row("delayed", 6), row("custom-A", 6)})
	if rec.Key != "delayed" {
		t.Fatalf("ties should keep comparison order, got %q", rec.Key)
	}
	if !rec.RiskChange.IsZero() {
		t.Fatalf("expected zero change against the first row, got %s", rec.RiskChange)
	}
}

func TestRecommendScenario_Empty(t *testing.T) {
	if rec := RecommendScenario(nil); rec.Key != "" {
		t.Fatalf("expected empty recommendation, got %+v", rec)
	}
}
