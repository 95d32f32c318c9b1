package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProjectionYears are the modeled horizon points shared by every series
var ProjectionYears = []int{2024, 2026, 2028, 2030, 2035, 2040, 2045, 2050}

// TimeSeriesPoint is one modeled year of risk and financial figures.
// Revenue and expense figures are in millions.
type TimeSeriesPoint struct {
	Year            int             `yaml:"year" json:"year"`
	Risk            decimal.Decimal `yaml:"risk" json:"risk"`
	Benchmark       decimal.Decimal `yaml:"benchmark" json:"benchmark"`
	Revenue         decimal.Decimal `yaml:"revenue" json:"revenue"`
	Expenses        decimal.Decimal `yaml:"expenses" json:"expenses"`
	NOI             decimal.Decimal `yaml:"noi" json:"noi"`
	RevenuePayFines decimal.Decimal `yaml:"revenue_pay_fines" json:"revenue_pay_fines"`
	RevenueRetrofit decimal.Decimal `yaml:"revenue_retrofit" json:"revenue_retrofit"`
	ExpensePayFines decimal.Decimal `yaml:"expense_pay_fines" json:"expense_pay_fines"`
	ExpenseRetrofit decimal.Decimal `yaml:"expense_retrofit" json:"expense_retrofit"`
}

// ValidateSeries checks that years are strictly increasing
func ValidateSeries(series []TimeSeriesPoint) error {
	for i := 1; i < len(series); i++ {
		if series[i].Year <= series[i-1].Year {
			return fmt.Errorf("series years must be strictly increasing: %d follows %d", series[i].Year, series[i-1].Year)
		}
	}
	return nil
}

// CloneSeries returns a copy of the series that shares no backing array
func CloneSeries(series []TimeSeriesPoint) []TimeSeriesPoint {
	if series == nil {
		return nil
	}
	out := make([]TimeSeriesPoint, len(series))
	copy(out, series)
	return out
}
