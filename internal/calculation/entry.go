package calculation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultFormData returns the values the asset details form starts with
func DefaultFormData() domain.PropertyFormData {
	return domain.PropertyFormData{
		ClientName:               "ABC Real Estate Corp",
		LoanValue:                "32000000",
		PropertyValue:            "45000000",
		PropertyType:             "office",
		YearBuilt:                "2015",
		SquareFootage:            "250000",
		EstimatedEnergyIntensity: "85",
		HeatSource:               "natural-gas",
		GreenCertifications:      "leed-gold",
		TTMRevenue:               "8500000",
		AnnualDebtPayment:        "2800000",
		NetOperatingIncome:       "6200000",
		OperatingExpenses:        "2300000",
	}
}

// PropertyTypeSlug lower-cases a display type and hyphenates its first space ("Mixed Use" -> "mixed-use")
func PropertyTypeSlug(t string) string {
	return strings.Replace(strings.ToLower(t), " ", "-", 1)
}

// EstimateEnergyIntensity estimates kWh/sq ft/year from the construction year
func EstimateEnergyIntensity(yearBuilt int) int {
	switch {
	case yearBuilt > 2015:
		return 65
	case yearBuilt > 2010:
		return 85
	default:
		return 105
	}
}

// FormDataForProperty prefills the form from a catalog record. Fields the
// catalog does not carry keep their defaults.
func FormDataForProperty(p domain.PropertyRecord) domain.PropertyFormData {
	f := DefaultFormData()
	f.PropertyValue = p.Value.String()
	f.PropertyType = PropertyTypeSlug(p.Type)
	f.YearBuilt = strconv.Itoa(p.YearBuilt)
	f.SquareFootage = strconv.Itoa(p.Size)
	f.EstimatedEnergyIntensity = strconv.Itoa(EstimateEnergyIntensity(p.YearBuilt))
	if p.HeatSource != "" {
		f.HeatSource = p.HeatSource
	}
	if p.GreenCertifications != "" {
		f.GreenCertifications = p.GreenCertifications
	}
	if p.ClientName != "" {
		f.ClientName = p.ClientName
	}
	return f
}

// MaxFormAmount bounds form numbers; larger magnitudes are treated as unusable
const MaxFormAmount = 1e15

var leadingAmount = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseAmount reads the leading number of a form field. Thousands separators
// and a leading "$" are tolerated; trailing text is ignored.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = leadingAmount.FindString(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > MaxFormAmount {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// ratio divides two form fields. Missing, unparsable or zero-divisor input gives zero.
func ratio(numerator, denominator string) decimal.Decimal {
	n, ok := parseAmount(numerator)
	if !ok {
		return decimal.Zero
	}
	d, ok := parseAmount(denominator)
	if !ok || d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}

// FormLTV is loan value over property value, in percent
func FormLTV(f domain.PropertyFormData) decimal.Decimal {
	return ratio(f.LoanValue, f.PropertyValue).Mul(hundred)
}

// FormDSCR is net operating income over annual debt payment
func FormDSCR(f domain.PropertyFormData) decimal.Decimal {
	return ratio(f.NetOperatingIncome, f.AnnualDebtPayment)
}

// FormPropertyValue returns the parsed property value, zero when unusable
func FormPropertyValue(f domain.PropertyFormData) decimal.Decimal {
	v, _ := parseAmount(f.PropertyValue)
	return v
}

var (
	ltvHighRisk     = decimal.NewFromInt(80)
	ltvModerate     = decimal.NewFromInt(70)
	dscrWeak        = decimal.NewFromFloat(1.2)
	dscrAdequate    = decimal.NewFromFloat(1.5)
	intensityHigh   = 90
	intensityMedium = 70
	intensityFloor  = 50
)

// LTVStatus classifies a loan-to-value percentage
func LTVStatus(ltv decimal.Decimal) string {
	switch {
	case ltv.GreaterThan(ltvHighRisk):
		return "High Risk"
	case ltv.GreaterThan(ltvModerate):
		return "Moderate"
	default:
		return "Healthy"
	}
}

// DSCRStatus classifies a debt-service coverage ratio
func DSCRStatus(dscr decimal.Decimal) string {
	switch {
	case dscr.LessThan(dscrWeak):
		return "Weak"
	case dscr.LessThan(dscrAdequate):
		return "Adequate"
	default:
		return "Strong"
	}
}

// EnergyBenchmark compares an energy intensity against the market average
func EnergyBenchmark(intensity int) string {
	switch {
	case intensity > intensityHigh:
		return "Above average"
	case intensity > intensityMedium:
		return "Average"
	default:
		return "Below average"
	}
}

// ImprovementPotential is how far intensity sits above the efficient floor
func ImprovementPotential(intensity int) int {
	return max(0, intensity-intensityFloor)
}

// AnalyzeForm computes the ratios and ratings shown beside the details form
func AnalyzeForm(f domain.PropertyFormData) domain.FormInsights {
	ltv := FormLTV(f)
	dscr := FormDSCR(f)
	intensity, _ := strconv.Atoi(strings.TrimSpace(f.EstimatedEnergyIntensity))
	return domain.FormInsights{
		LTV:                  ltv,
		DSCR:                 dscr,
		LTVDisplay:           ltv.StringFixed(1),
		DSCRDisplay:          dscr.StringFixed(2),
		LTVStatus:            LTVStatus(ltv),
		DSCRStatus:           DSCRStatus(dscr),
		EnergyIntensity:      intensity,
		EnergyBenchmark:      EnergyBenchmark(intensity),
		ImprovementPotential: ImprovementPotential(intensity),
	}
}
