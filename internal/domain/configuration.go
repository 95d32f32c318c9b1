package domain

// Configuration is the application configuration loaded from YAML
type Configuration struct {
	Defaults        Defaults        `yaml:"defaults" json:"defaults"`
	CustomScenarios []ScenarioInput `yaml:"custom_scenarios,omitempty" json:"custom_scenarios,omitempty"`
	Server          ServerSettings  `yaml:"server" json:"server"`
}

// Defaults are the initial control selections
type Defaults struct {
	Scenario string       `yaml:"scenario" json:"scenario"` // scenario key, e.g. "baseline" or "custom-High Carbon"
	Payment  PaymentInput `yaml:"payment" json:"payment"`
}

// ServerSettings configures the HTTP surface and logging
type ServerSettings struct {
	Port     int    `yaml:"port" json:"port"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}
