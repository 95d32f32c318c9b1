package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "riskdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "defaults:\n" +
		"  scenario: custom-Stress\n" +
		"  payment:\n" +
		"    method: loan\n" +
		"    coverage: 90\n" +
		"    term_years: 20\n" +
		"custom_scenarios:\n" +
		"  - kind: custom\n" +
		"    name: Stress\n" +
		"    energy_prices: 80\n" +
		"    carbon_tax: 30\n" +
		"    regulatory_intensity: 70\n" +
		"server:\n" +
		"  port: 9090\n" +
		"  log_level: debug\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "custom-Stress", config.Defaults.Scenario)
	assert.Equal(t, domain.PaymentLoan, config.Defaults.Payment.Method)
	assert.Equal(t, "90", config.Defaults.Payment.Coverage.String())
	assert.Equal(t, 20, config.Defaults.Payment.TermYears)
	// rate left out takes the default
	assert.Equal(t, "5.5", config.Defaults.Payment.InterestRate.String())
	require.Len(t, config.CustomScenarios, 1)
	assert.Equal(t, "30", config.CustomScenarios[0].CarbonTax.String())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "debug", config.Server.LogLevel)
}

func TestLoadFromFile_EmptyUsesDefaults(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "baseline", config.Defaults.Scenario)
	assert.Equal(t, domain.PaymentUpfront, config.Defaults.Payment.Method)
	assert.Equal(t, DefaultPort, config.Server.Port)
	assert.Equal(t, DefaultLogLevel, config.Server.LogLevel)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
defaults:
	scenario: "baseline"
		payment: [
`
	config, err := NewInputParser().LoadFromFile(writeConfig(t, testConfig))
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Configuration)
		want   string
	}{
		{"unknown payment method", func(c *domain.Configuration) { c.Defaults.Payment.Method = "lease" }, "unknown payment method"},
		{"zero term", func(c *domain.Configuration) { c.Defaults.Payment.TermYears = 0 }, "loan term"},
		{"low coverage", func(c *domain.Configuration) { c.Defaults.Payment.Coverage = c.Defaults.Payment.Coverage.Sub(c.Defaults.Payment.Coverage) }, "coverage"},
		{"unknown scenario", func(c *domain.Configuration) { c.Defaults.Scenario = "custom-Missing" }, "defaults.scenario"},
		{"named kind saved", func(c *domain.Configuration) { c.CustomScenarios[0].Kind = domain.ScenarioDelayed }, "only custom scenarios"},
		{"blank name", func(c *domain.Configuration) { c.CustomScenarios[1].Name = " " }, "name is required"},
		{"duplicate name", func(c *domain.Configuration) { c.CustomScenarios[1].Name = c.CustomScenarios[0].Name }, "duplicate name"},
		{"slider out of range", func(c *domain.Configuration) {
			c.CustomScenarios[0] = domain.Custom("High Carbon", 120, 0, 50)
		}, "energy_prices"},
		{"bad port", func(c *domain.Configuration) { c.Server.Port = 70000 }, "server.port"},
		{"bad log level", func(c *domain.Configuration) { c.Server.LogLevel = "loud" }, "server.log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewInputParser()
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(config))
	assert.Len(t, config.CustomScenarios, 2)
	assert.Equal(t, "custom-High Carbon", config.Defaults.Scenario)
}

func TestWriteExampleConfigurationRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.WriteExampleConfiguration(path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	want := parser.CreateExampleConfiguration()
	assert.Equal(t, want.Defaults.Scenario, loaded.Defaults.Scenario)
	assert.True(t, want.Defaults.Payment.Coverage.Equal(loaded.Defaults.Payment.Coverage))
	require.Len(t, loaded.CustomScenarios, 2)
	assert.True(t, want.CustomScenarios[0].CarbonTax.Equal(loaded.CustomScenarios[0].CarbonTax))
	assert.Equal(t, want.CustomScenarios[1].Name, loaded.CustomScenarios[1].Name)
}

func TestApplyEnvironment(t *testing.T) {
	env := map[string]string{
		EnvLogLevel: "warn",
		EnvPort:     "7000",
		EnvScenario: "delayed",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	parser := NewInputParser()
	config := parser.DefaultConfiguration()
	require.NoError(t, parser.ApplyEnvironment(config, lookup))
	assert.Equal(t, "warn", config.Server.LogLevel)
	assert.Equal(t, 7000, config.Server.Port)
	assert.Equal(t, "delayed", config.Defaults.Scenario)

	env[EnvPort] = "eighty"
	assert.Error(t, parser.ApplyEnvironment(parser.DefaultConfiguration(), lookup))

	env[EnvPort] = "8081"
	env[EnvScenario] = "custom-Unknown"
	assert.Error(t, parser.ApplyEnvironment(parser.DefaultConfiguration(), lookup))
}
