package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects how a retrofit is financed
type PaymentMethod string

const (
	PaymentUpfront PaymentMethod = "upfront"
	PaymentLoan    PaymentMethod = "loan"
)

// Loan parameter defaults used by the payment structure controls
var (
	DefaultLoanCoverage     = decimal.NewFromInt(80)
	DefaultLoanTermYears    = 25
	DefaultLoanInterestRate = decimal.NewFromFloat(5.5)
)

var (
	ErrInvalidLoanTerm     = errors.New("loan term must be at least 1 year")
	ErrInvalidCoverage     = errors.New("loan coverage must be between 50% and 100%")
	ErrInvalidInterestRate = errors.New("interest rate cannot be negative")
)

// PaymentInput describes the financing structure. Loan fields are ignored for upfront payment.
type PaymentInput struct {
	Method       PaymentMethod   `yaml:"method" json:"method"`
	Coverage     decimal.Decimal `yaml:"coverage,omitempty" json:"coverage"`           // percent 50-100
	TermYears    int             `yaml:"term_years,omitempty" json:"term_years"`       // years
	InterestRate decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate"` // percent
}

// Upfront returns an upfront payment input
func Upfront() PaymentInput { return PaymentInput{Method: PaymentUpfront} }

// Loan returns a loan payment input
func Loan(coverage float64, termYears int, interestRate float64) PaymentInput {
	return PaymentInput{
		Method:       PaymentLoan,
		Coverage:     decimal.NewFromFloat(coverage),
		TermYears:    termYears,
		InterestRate: decimal.NewFromFloat(interestRate),
	}
}

// DefaultLoan returns a loan input populated with the control defaults
func DefaultLoan() PaymentInput {
	return PaymentInput{
		Method:       PaymentLoan,
		Coverage:     DefaultLoanCoverage,
		TermYears:    DefaultLoanTermYears,
		InterestRate: DefaultLoanInterestRate,
	}
}

// IsLoan reports whether the input finances through a loan
func (p PaymentInput) IsLoan() bool { return p.Method == PaymentLoan }

// Validate checks loan parameters. Upfront inputs are always valid.
func (p PaymentInput) Validate() error {
	if !p.IsLoan() {
		return nil
	}
	if p.TermYears < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidLoanTerm, p.TermYears)
	}
	if p.Coverage.LessThan(decimal.NewFromInt(50)) || p.Coverage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w, got %s", ErrInvalidCoverage, p.Coverage)
	}
	if p.InterestRate.IsNegative() {
		return fmt.Errorf("%w, got %s", ErrInvalidInterestRate, p.InterestRate)
	}
	return nil
}

// ParsePaymentMethod maps a user supplied method name; empty means upfront
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentUpfront, PaymentLoan:
		return m, nil
	case "":
		return PaymentUpfront, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// LoanAdjustment is the LTV/DSCR pair after applying a payment structure
type LoanAdjustment struct {
	LTV  decimal.Decimal `json:"ltv"`
	DSCR decimal.Decimal `json:"dscr"`
}
