package output

import (
	"bytes"
	"encoding/csv"

	"github.com/climatelens/risk-analytics/internal/domain"
)

// CSVDetailedExporter provides the raw yearly series of the asset and portfolio views.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(r *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "Scenario", "Year", "Risk", "Benchmark", "Revenue", "Expenses", "NOI",
		"RevenuePayFines", "RevenueRetrofit", "ExpensePayFines", "ExpenseRetrofit", "BenchmarkShown"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	write := func(section, scenario string, series []domain.TimeSeriesPoint, benchmark bool) error {
		for _, p := range series {
			row := []string{
				section,
				scenario,
				intToString(p.Year),
				p.Risk.StringFixed(2),
				p.Benchmark.StringFixed(2),
				p.Revenue.StringFixed(2),
				p.Expenses.StringFixed(2),
				p.NOI.StringFixed(2),
				p.RevenuePayFines.StringFixed(2),
				p.RevenueRetrofit.StringFixed(2),
				p.ExpensePayFines.StringFixed(2),
				p.ExpenseRetrofit.StringFixed(2),
				boolToString(benchmark),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if a := r.Asset; a != nil {
		if err := write("asset", a.Scenario.Key(), a.Series, a.ShowBenchmark); err != nil {
			return nil, err
		}
	}
	if p := r.Portfolio; p != nil {
		if err := write("portfolio", p.Scenario.Key(), p.Trend, false); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
