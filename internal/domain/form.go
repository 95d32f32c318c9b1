package domain

// PropertyFormData is the per-property record entered on the asset details step
// and carried between pages in the navigation data parameter. Values stay as the
// strings the user typed; typed access goes through calculation helpers.
type PropertyFormData struct {
	ClientName               string `json:"clientName" yaml:"client_name"`
	LoanValue                string `json:"loanValue" yaml:"loan_value"`
	PropertyValue            string `json:"propertyValue" yaml:"property_value"`
	PropertyType             string `json:"propertyType" yaml:"property_type"`
	YearBuilt                string `json:"yearBuilt" yaml:"year_built"`
	SquareFootage            string `json:"squareFootage" yaml:"square_footage"`
	EstimatedEnergyIntensity string `json:"estimatedEnergyIntensity" yaml:"estimated_energy_intensity"` // kWh/sq ft/year
	HeatSource               string `json:"heatSource" yaml:"heat_source"`
	GreenCertifications      string `json:"greenCertifications" yaml:"green_certifications"`
	TTMRevenue               string `json:"ttmRevenue" yaml:"ttm_revenue"`
	AnnualDebtPayment        string `json:"annualDebtPayment" yaml:"annual_debt_payment"`
	NetOperatingIncome       string `json:"netOperatingIncome" yaml:"net_operating_income"`
	OperatingExpenses        string `json:"operatingExpenses" yaml:"operating_expenses"`
}

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var PropertyTypeOptions = []Option{
	{"office", "Office"},
	{"retail", "Retail"},
	{"industrial", "Industrial"},
	{"mixed-use", "Mixed Use"},
}

var HeatSourceOptions = []Option{
	{"natural-gas", "Natural Gas"},
	{"electricity", "Electricity"},
	{"oil", "Oil"},
	{"geothermal", "Geothermal"},
	{"solar", "Solar"},
}

var GreenCertificationOptions = []Option{
	{"none", "None"},
	{"leed-gold", "LEED Gold"},
	{"leed-platinum", "LEED Platinum"},
	{"energy-star", "Energy Star"},
	{"boma-best", "BOMA BEST"},
	{"green-globes", "Green Globes"},
}

// OptionLabel returns the label for value, or the value itself when unknown
func OptionLabel(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// HasOption reports whether value is one of the options
func HasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
