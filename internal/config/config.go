// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/catalog"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for the credit simulator.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Tracing  TracingConfig  `yaml:"tracing,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Direct   DirectConfig   `yaml:"direct,omitempty"`
	Banks    []BankConfig   `yaml:"banks,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// TracingConfig points the OTLP exporter at a collector. An empty endpoint
// disables export.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint,omitempty"`
	ServiceName string `yaml:"serviceName,omitempty"`
}

// DefaultsConfig fills request fields the caller leaves unset.
type DefaultsConfig struct {
	TermMonths         int     `yaml:"termMonths"`
	DownPaymentPercent float64 `yaml:"downPaymentPercent"`
	System             string  `yaml:"system"`
}

// DirectConfig holds the dealer's own financing terms.
type DirectConfig struct {
	MonthlyRatePct float64 `yaml:"monthlyRatePct"`
	AdminFee       float64 `yaml:"adminFee"`
	GPSFee         float64 `yaml:"gpsFee"`
	InsuranceFee   float64 `yaml:"insuranceFee"`
	Policy         string  `yaml:"policy,omitempty"` // flat, amortized
}

// BankConfig declares a lender. Entries whose id matches a built-in lender
// replace it.
type BankConfig struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name,omitempty"`
	AnnualRatePct      float64 `yaml:"annualRatePct"`
	LegalFee           float64 `yaml:"legalFee,omitempty"`
	InsuranceRatePct   float64 `yaml:"insuranceRatePct,omitempty"`
	DesgravamenRatePct float64 `yaml:"desgravamenRatePct,omitempty"`
	GPSMonthlyFee      float64 `yaml:"gpsMonthlyFee,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults. Environment
// variables prefixed with CREDIT_ override file values, e.g.
// CREDIT_DEFAULTS_TERMMONTHS or CREDIT_LOGGING_LEVEL.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("tracing.endpoint", constants.EnvPrefix+"_TRACING_ENDPOINT", "OTEL_ENDPOINT")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("tracing.servicename", constants.DefaultServiceName)
	v.SetDefault("defaults.termmonths", constants.DefaultTermMonths)
	v.SetDefault("defaults.downpaymentpercent", constants.DefaultDownPaymentPercent)
	v.SetDefault("defaults.system", string(loans.SystemFrench))
	v.SetDefault("direct.policy", loans.DirectFlat.String())
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}

// BankProfiles converts the declared banks into engine profiles.
func (c *Configuration) BankProfiles() []loans.BankProfile {
	profiles := make([]loans.BankProfile, 0, len(c.Banks))
	for _, b := range c.Banks {
		profiles = append(profiles, loans.BankProfile{
			ID:                 b.ID,
			Name:               b.Name,
			AnnualRatePct:      b.AnnualRatePct,
			LegalFee:           b.LegalFee,
			InsuranceRatePct:   b.InsuranceRatePct,
			DesgravamenRatePct: b.DesgravamenRatePct,
			GPSMonthlyFee:      b.GPSMonthlyFee,
		})
	}
	return profiles
}

// Catalog builds the lender catalog: the built-in lenders overridden and
// extended by the configured banks.
func (c *Configuration) Catalog() (*catalog.Catalog, error) {
	cat, err := catalog.Merge(catalog.Builtin(), c.BankProfiles())
	if err != nil {
		return nil, fmt.Errorf("invalid bank configuration: %w", err)
	}
	return cat, nil
}

// DirectTerms returns the dealer's direct financing terms.
func (c *Configuration) DirectTerms() loans.DirectTerms {
	return loans.DirectTerms{
		MonthlyRatePct: c.Direct.MonthlyRatePct,
		AdminFee:       c.Direct.AdminFee,
		GPSFee:         c.Direct.GPSFee,
		InsuranceFee:   c.Direct.InsuranceFee,
	}
}

// DirectOptions returns the decomposition policy for direct schedules.
func (c *Configuration) DirectOptions() (loans.DirectOptions, error) {
	policy, err := loans.ParseDirectPolicy(c.Direct.Policy)
	if err != nil {
		return loans.DirectOptions{}, err
	}
	return loans.DirectOptions{Policy: policy}, nil
}

// DefaultSystem returns the configured default amortization system, falling
// back to French when the value is not recognized.
func (c *Configuration) DefaultSystem() loans.System {
	system, err := loans.ParseSystem(c.Defaults.System)
	if err != nil {
		return loans.SystemFrench
	}
	return system
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		Banks:                     c.BankProfiles(),
		Direct:                    c.DirectTerms(),
		DefaultTermMonths:         c.Defaults.TermMonths,
		DefaultDownPaymentPercent: c.Defaults.DownPaymentPercent,
		DefaultSystem:             c.Defaults.System,
	}
	warnings := validator.ValidateAll()

	if _, err := loans.ParseDirectPolicy(c.Direct.Policy); err != nil {
		warnings = append(warnings, fmt.Sprintf("Direct policy '%s' is not recognized (expected flat or amortized)", c.Direct.Policy))
	}
	return warnings
}

// WriteYAML writes the effective configuration as YAML.
func (c *Configuration) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}
