package output

import (
	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists the modeling assumptions of the baseline scenario
// paid upfront, rendered when a report carries none of its own.
var DefaultAssumptions = calculation.ModelAssumptions(domain.Baseline(), domain.Upfront())

// reportAssumptions returns the report's assumptions, falling back to the defaults
func reportAssumptions(r *domain.Report) []string {
	if len(r.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return r.Assumptions
}

var decimalHundred = decimal.NewFromInt(100)
