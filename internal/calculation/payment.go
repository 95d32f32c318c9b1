package calculation

import (
	"fmt"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

// Loan impact coefficients
var (
	ltvImpactFactor     = decimal.NewFromFloat(0.15)
	dscrImpactFactor    = decimal.NewFromFloat(0.1)
	referenceRate       = decimal.NewFromFloat(5.5)
	referenceTermYears  = decimal.NewFromInt(30)
	portfolioDSCRChange = decimal.NewFromFloat(0.08)
	ltvRisingCoverage   = decimal.NewFromInt(75)
)

// Baseline LTV (percent) and DSCR used when no property data is available
var (
	DefaultBaseLTV  = decimal.NewFromFloat(71.1)
	DefaultBaseDSCR = decimal.NewFromFloat(2.21)
)

// LTV direction labels
const (
	LTVIncreasing = "↑ Increasing"
	LTVStable     = "→ Stable"
)

// LoanImpacts returns the LTV increase and DSCR decrease caused by financing
// coverage percent of a retrofit over termYears at interestRate percent.
func LoanImpacts(coverage decimal.Decimal, termYears int, interestRate decimal.Decimal) (ltvImpact, dscrImpact decimal.Decimal, err error) {
	if termYears < 1 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w, got %d", domain.ErrInvalidLoanTerm, termYears)
	}
	share := coverage.Div(hundred)
	ltvImpact = share.Mul(ltvImpactFactor)
	dscrImpact = share.
		Mul(interestRate.Div(referenceRate)).
		Mul(referenceTermYears.Div(decimal.NewFromInt(int64(termYears)))).
		Mul(dscrImpactFactor)
	return ltvImpact, dscrImpact, nil
}

// ComputeLoanAdjustment applies loan financing to a baseline LTV/DSCR pair
func ComputeLoanAdjustment(baseLTV, baseDSCR, coverage decimal.Decimal, termYears int, interestRate decimal.Decimal) (domain.LoanAdjustment, error) {
	ltvImpact, dscrImpact, err := LoanImpacts(coverage, termYears, interestRate)
	if err != nil {
		return domain.LoanAdjustment{}, err
	}
	return domain.LoanAdjustment{
		LTV:  baseLTV.Add(ltvImpact),
		DSCR: baseDSCR.Sub(dscrImpact),
	}, nil
}

// ApplyPayment adjusts a baseline for a payment structure. Upfront payment
// leaves the baseline unchanged whatever the loan fields hold.
func ApplyPayment(baseLTV, baseDSCR decimal.Decimal, payment domain.PaymentInput) (domain.LoanAdjustment, error) {
	if !payment.IsLoan() {
		return domain.LoanAdjustment{LTV: baseLTV, DSCR: baseDSCR}, nil
	}
	return ComputeLoanAdjustment(baseLTV, baseDSCR, payment.Coverage, payment.TermYears, payment.InterestRate)
}

// PortfolioPaymentMetrics are the payment-dependent portfolio KPI cards
type PortfolioPaymentMetrics struct {
	AvgDSCR      string
	LTVDirection string
}

// PortfolioPayment derives the average DSCR change and LTV direction for the
// portfolio under a payment structure.
func PortfolioPayment(payment domain.PaymentInput) (PortfolioPaymentMetrics, error) {
	if !payment.IsLoan() {
		return PortfolioPaymentMetrics{
			AvgDSCR:      "-" + portfolioDSCRChange.StringFixed(2),
			LTVDirection: LTVIncreasing,
		}, nil
	}
	_, dscrImpact, err := LoanImpacts(payment.Coverage, payment.TermYears, payment.InterestRate)
	if err != nil {
		return PortfolioPaymentMetrics{}, err
	}
	direction := LTVStable
	if payment.Coverage.GreaterThan(ltvRisingCoverage) {
		direction = LTVIncreasing
	}
	return PortfolioPaymentMetrics{
		AvgDSCR:      "-" + portfolioDSCRChange.Add(dscrImpact).StringFixed(2),
		LTVDirection: direction,
	}, nil
}
