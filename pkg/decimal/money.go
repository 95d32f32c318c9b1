package decimal

import (
	"github.com/shopspring/decimal"
)

var (
	million = decimal.NewFromInt(1_000_000)
	billion = decimal.NewFromInt(1_000_000_000)
)

// Money represents a dollar amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// FromMillions creates Money from an amount expressed in millions
func FromMillions(d decimal.Decimal) Money {
	return Money{d.Mul(million)}
}

// FromBillions creates Money from an amount expressed in billions
func FromBillions(d decimal.Decimal) Money {
	return Money{d.Mul(billion)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Millions returns the amount in millions
func (m Money) Millions() decimal.Decimal {
	return m.Decimal.Div(million)
}

// Billions returns the amount in billions
func (m Money) Billions() decimal.Decimal {
	return m.Decimal.Div(billion)
}

// Sum adds up amounts
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal)
	}
	return Money{total}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the amount as dollars and cents ("$1234.50")
func (m Money) Format() string {
	if m.IsNegative() {
		return "-$" + m.Decimal.Neg().StringFixed(2)
	}
	return "$" + m.String()
}

// FormatMillions renders the amount in millions with places decimals ("$45M", "$2.1M")
func (m Money) FormatMillions(places int32) string {
	return compact(m.Millions(), places, "M")
}

// FormatBillions renders the amount in billions with places decimals ("$7.5B")
func (m Money) FormatBillions(places int32) string {
	return compact(m.Billions(), places, "B")
}

// FormatCompact picks billions or millions by magnitude, one decimal place
func (m Money) FormatCompact() string {
	if m.Abs().GreaterThanOrEqual(billion) {
		return m.FormatBillions(1)
	}
	return m.FormatMillions(1)
}

func compact(v decimal.Decimal, places int32, unit string) string {
	if v.IsNegative() {
		return "-$" + v.Neg().StringFixed(places) + unit
	}
	return "$" + v.StringFixed(places) + unit
}
