package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskLevel is the coarse risk classification attached to a property
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the level is one of the known classifications
func (rl RiskLevel) Valid() bool {
	switch rl {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Title returns the display form ("Medium")
func (rl RiskLevel) Title() string {
	if rl == "" {
		return ""
	}
	s := string(rl)
	return strings.ToUpper(s[:1]) + s[1:]
}

// PropertyRecord is a read-only catalog entry for a commercial real-estate asset
type PropertyRecord struct {
	ID                  int             `yaml:"id" json:"id"`
	Address             string          `yaml:"address" json:"address"`
	City                string          `yaml:"city" json:"city"`
	State               string          `yaml:"state" json:"state"`
	Country             string          `yaml:"country" json:"country"`
	ClientName          string          `yaml:"client_name" json:"client_name"`
	Type                string          `yaml:"type" json:"type"`
	YearBuilt           int             `yaml:"year_built" json:"year_built"`
	Size                int             `yaml:"size" json:"size"` // square feet
	Value               decimal.Decimal `yaml:"value" json:"value"`
	RiskScore           decimal.Decimal `yaml:"risk_score" json:"risk_score"` // 0-10
	RiskLevel           RiskLevel       `yaml:"risk_level" json:"risk_level"`
	LTV                 decimal.Decimal `yaml:"ltv" json:"ltv"` // percent
	DSCR                decimal.Decimal `yaml:"dscr" json:"dscr"`
	NetOperatingIncome  decimal.Decimal `yaml:"net_operating_income" json:"net_operating_income"`
	TTMRevenue          decimal.Decimal `yaml:"ttm_revenue" json:"ttm_revenue"`
	AnnualDebtPayment   decimal.Decimal `yaml:"annual_debt_payment" json:"annual_debt_payment"`
	HeatSource          string          `yaml:"heat_source" json:"heat_source"`
	GreenCertifications string          `yaml:"green_certifications" json:"green_certifications"`
}

// ShortAddress returns the street portion of the address (text before the first comma)
func (p PropertyRecord) ShortAddress() string {
	if i := strings.Index(p.Address, ","); i >= 0 {
		return p.Address[:i]
	}
	return p.Address
}

// Validate checks the invariants a catalog entry must satisfy
func (p PropertyRecord) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d", p.ID)
	}
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("address is required")
	}
	if p.RiskScore.LessThan(decimal.Zero) || p.RiskScore.GreaterThan(decimal.NewFromInt(10)) {
		return fmt.Errorf("risk score must be between 0 and 10, got %s", p.RiskScore)
	}
	if !p.RiskLevel.Valid() {
		return fmt.Errorf("unknown risk level %q", p.RiskLevel)
	}
	if p.Value.LessThan(decimal.Zero) {
		return fmt.Errorf("value cannot be negative")
	}
	return nil
}
