package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	stddec "github.com/shopspring/decimal"

	"github.com/climatelens/risk-analytics/internal/config"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/output"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(stddec.NewFromFloat(123.45)); got != "$123.45" {
		t.Fatalf("FormatCurrency = %q", got)
	}
	if got := output.FormatPercentage(stddec.NewFromFloat(12.34)); got != "12.34%" {
		t.Fatalf("FormatPercentage = %q", got)
	}
	if got := output.FormatMillions(stddec.NewFromFloat(2.73)); got != "$2.7M" {
		t.Fatalf("FormatMillions = %q", got)
	}
}

func TestSaveConfiguration(t *testing.T) {
	parser := config.NewInputParser()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := output.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	loaded, err := parser.LoadFromFile(path)
	if err != nil {
		t.Fatalf("reload saved configuration: %v", err)
	}
	if loaded.Defaults.Scenario != "custom-High Carbon" {
		t.Fatalf("unexpected default scenario %q", loaded.Defaults.Scenario)
	}
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	r := &domain.Report{
		ID:          "r1",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Comparison: []domain.ScenarioComparisonRow{
			{Key: "baseline", Label: "Baseline", Multiplier: stddec.NewFromInt(1), FinalYear: 2050, FinalRisk: stddec.NewFromFloat(4.7)},
		},
	}

	files, err := output.GenerateReport(r, "json", dir)
	if err != nil {
		t.Fatalf("GenerateReport json error: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "climate_risk_report_20260102_030405.json") {
		t.Fatalf("unexpected files %v", files)
	}

	files, err = output.GenerateReport(r, "csv-summary", dir)
	if err != nil {
		t.Fatalf("GenerateReport csv error: %v", err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(data), "Baseline,baseline,1.00,2050,4.70") {
		t.Fatalf("unexpected csv: %s", data)
	}

	files, err = output.GenerateReport(r, "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}

	if _, err := output.GenerateReport(r, "pdf", dir); !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
