package output

import (
	"bytes"
	"encoding/csv"

	"github.com/climatelens/risk-analytics/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per compared scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Key", "Multiplier", "FinalYear", "FinalRisk", "CumulativeRevenue", "CumulativeExpense", "RiskScore", "AnnualRiskCost", "NetSavings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range r.Comparison {
		rec := []string{
			row.Label,
			row.Key,
			row.Multiplier.StringFixed(2),
			intToString(row.FinalYear),
			row.FinalRisk.StringFixed(2),
			row.CumulativeRevenue.StringFixed(2),
			row.CumulativeExpense.StringFixed(2),
			row.RiskScore.StringFixed(2),
			row.AnnualRiskCost.StringFixed(2),
			row.NetSavings.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
