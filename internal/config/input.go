package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults applied to settings the file leaves empty
const (
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Environment variables that override file settings
const (
	EnvConfig   = "RISKDASH_CONFIG"
	EnvLogLevel = "RISKDASH_LOG_LEVEL"
	EnvPort     = "RISKDASH_PORT"
	EnvScenario = "RISKDASH_SCENARIO"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// InputParser handles parsing of dashboard configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML configuration, fills in defaults and validates it
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills empty settings. Loan parameters left out of a loan
// payment take the control defaults.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.Server.Port == 0 {
		config.Server.Port = DefaultPort
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = DefaultLogLevel
	}
	if strings.TrimSpace(config.Defaults.Scenario) == "" {
		config.Defaults.Scenario = string(domain.ScenarioBaseline)
	}

	p := &config.Defaults.Payment
	if p.Method == "" {
		p.Method = domain.PaymentUpfront
	}
	if p.IsLoan() {
		if p.Coverage.IsZero() {
			p.Coverage = domain.DefaultLoanCoverage
		}
		if p.TermYears == 0 {
			p.TermYears = domain.DefaultLoanTermYears
		}
		if p.InterestRate.IsZero() {
			p.InterestRate = domain.DefaultLoanInterestRate
		}
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if _, err := domain.ParsePaymentMethod(string(config.Defaults.Payment.Method)); err != nil {
		return fmt.Errorf("defaults.payment: %w", err)
	}
	if err := config.Defaults.Payment.Validate(); err != nil {
		return fmt.Errorf("defaults.payment: %w", err)
	}

	seen := make(map[string]bool, len(config.CustomScenarios))
	for i, s := range config.CustomScenarios {
		if err := ip.validateCustomScenario(s); err != nil {
			return fmt.Errorf("custom scenario %d validation failed: %w", i, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("custom scenario %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}

	registry, err := calculation.NewScenarioRegistry(config.CustomScenarios...)
	if err != nil {
		return err
	}
	if _, known := registry.Lookup(config.Defaults.Scenario); !known {
		return fmt.Errorf("defaults.scenario %q is not a named scenario or a configured custom scenario", config.Defaults.Scenario)
	}

	return ip.validateServer(&config.Server)
}

// validateCustomScenario checks a configured custom scenario
func (ip *InputParser) validateCustomScenario(s domain.ScenarioInput) error {
	if err := calculation.ValidateCustomScenario(s); err != nil {
		return err
	}
	// Sliders are unbounded in the model; the file is held to the slider range
	hundred := decimal.NewFromInt(100)
	for name, v := range map[string]decimal.Decimal{
		"energy_prices":        s.EnergyPrices,
		"carbon_tax":           s.CarbonTax,
		"regulatory_intensity": s.RegulatoryIntensity,
	} {
		if v.IsNegative() || v.GreaterThan(hundred) {
			return fmt.Errorf("%s must be between 0 and 100, got %s", name, v)
		}
	}
	return nil
}

// validateServer validates the HTTP and logging settings
func (ip *InputParser) validateServer(s *domain.ServerSettings) error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port)
	}
	level := strings.ToLower(s.LogLevel)
	for _, l := range validLogLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("server.log_level must be one of %s, got %q", strings.Join(validLogLevels, ", "), s.LogLevel)
}

// ApplyEnvironment overrides settings from RISKDASH_* variables and revalidates.
// lookup is usually os.LookupEnv.
func (ip *InputParser) ApplyEnvironment(config *domain.Configuration, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		config.Server.LogLevel = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q: %w", EnvPort, v, err)
		}
		config.Server.Port = port
	}
	if v, ok := lookup(EnvScenario); ok && v != "" {
		config.Defaults.Scenario = v
	}
	return ip.ValidateConfiguration(config)
}

// DefaultConfiguration returns the configuration used when no file is given
func (ip *InputParser) DefaultConfiguration() *domain.Configuration {
	config := &domain.Configuration{}
	ip.ApplyDefaults(config)
	return config
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Defaults: domain.Defaults{
			Scenario: domain.CustomScenarioPrefix + "High Carbon",
			Payment:  domain.DefaultLoan(),
		},
		CustomScenarios: []domain.ScenarioInput{
			domain.Custom("High Carbon", 70, 40, 60),
			domain.Custom("Cheap Energy", 20, 10, 50),
		},
		Server: domain.ServerSettings{
			Port:     DefaultPort,
			LogLevel: DefaultLogLevel,
		},
	}
}

// WriteExampleConfiguration writes the example configuration as YAML
func (ip *InputParser) WriteExampleConfiguration(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleConfiguration())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
