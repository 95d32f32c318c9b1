package calculation

import (
	"fmt"

	"github.com/climatelens/risk-analytics/internal/domain"
)

// ModelAssumptions lists the modeling assumptions behind a report, with the
// chosen scenario and payment structure spelled out.
func ModelAssumptions(scenario domain.ScenarioInput, payment domain.PaymentInput) []string {
	m := ComputeMultiplier(scenario)
	lines := []string{
		fmt.Sprintf("Scenario: %s (multiplier %s)", scenario.Label(), m.StringFixed(2)),
	}
	if scenario.Kind == domain.ScenarioCustom {
		lines = append(lines, fmt.Sprintf("Custom sliders: energy prices %s, carbon tax %s, regulatory intensity %s",
			scenario.EnergyPrices, scenario.CarbonTax, scenario.RegulatoryIntensity))
	}
	lines = append(lines,
		"Risk and fines-driven expenses scale 1:1 with the scenario multiplier",
		"Operating expenses carry 50%, retrofit revenue 30%, revenue and retrofit expenses 20%, fines-adjusted revenue 10% of the multiplier change",
		fmt.Sprintf("Baseline risk score %s/10, annual risk cost $%sM, net savings $%sM", BaseRiskScore, BaseAnnualRiskCost, BaseNetSavings),
	)
	if payment.IsLoan() {
		lines = append(lines, fmt.Sprintf("Retrofit financed by loan: %s%% coverage over %d years at %s%%",
			payment.Coverage, payment.TermYears, payment.InterestRate))
	} else {
		lines = append(lines, "Retrofit paid upfront: LTV and DSCR unchanged")
	}
	return lines
}
