// Package config defines the deal book file format and the functions for
// loading it and turning it into scenario assumptions.
package config

import (
	"fmt"

	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for deal-metrics.
type Configuration struct {
	Analysis Analysis
	Deals    []Deal
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Analysis holds defaults applied to every deal that does not override them.
type Analysis struct {
	VariationPercent float64
	DiscountRate     float64
	HoldMonths       int
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Assumptions converts every deal into scenario assumptions with the
// analysis defaults applied.
func (c *Configuration) Assumptions() ([]scenario.Assumptions, error) {
	deals := make([]scenario.Assumptions, 0, len(c.Deals))
	for _, deal := range c.Deals {
		a, err := deal.Assumptions(c.Analysis)
		if err != nil {
			return nil, err
		}
		deals = append(deals, a)
	}
	return deals, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Deals) == 0 {
		return append(warnings, "no deals configured")
	}

	seen := make(map[string]bool, len(c.Deals))
	for i, deal := range c.Deals {
		name := deal.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("deal %s has no name", name))
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("deal name %q is used more than once", name))
		}
		seen[name] = true

		warnings = append(warnings, deal.warnings(name)...)
	}

	return warnings
}
