// =============================================================================
// Fake Transaction Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the generator
// configuration. A single YAML file describes the date range, the baseline
// population, the irregularity plan, and the output targets.
//
// CONFIGURATION SOURCES (highest precedence first):
//   1. Environment variables (FAKEGEN_*)
//   2. The configuration file (config.yaml)
//   3. Built-in defaults
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Declarative: the irregularity plan is data, not code
//   - Validated: every loaded configuration is validated before use
//   - Reproducible: a fixed seed makes runs byte-identical
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/fake-transaction-generator/internal/irregularity"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full generator configuration.
// This is loaded from the config.yaml file.
type Config struct {
	// =========================================================================
	// GENERATION SETTINGS
	// =========================================================================

	// Seed initializes the random source. Two runs with the same seed and
	// configuration produce byte-identical outputs.
	// A zero seed derives one from the clock, making each run unique.
	// Default: 0
	Seed int64 `yaml:"seed"`

	// NumTransactions is the number of random baseline transactions.
	// Recurring transactions are generated on top of this count.
	// Default: 0 (only recurring transactions)
	NumTransactions int `yaml:"num_transactions"`

	// StartDate is the inclusive lower bound of the generation range,
	// in ISO 8601 date form (YYYY-MM-DD).
	StartDate string `yaml:"start_date"`

	// EndDate is the inclusive upper bound of the generation range,
	// in ISO 8601 date form (YYYY-MM-DD).
	EndDate string `yaml:"end_date"`

	// =========================================================================
	// IRREGULARITY SETTINGS
	// =========================================================================

	// TotalIrregularities is an optional cross-check against the sum of the
	// per-kind counts. When the two disagree, per-kind counts win and a
	// warning is logged.
	// Default: 0 (no cross-check)
	TotalIrregularities int `yaml:"total_irregularities"`

	// Irregularities maps each irregularity kind to its settings. Unknown
	// kinds are fatal configuration errors.
	Irregularities map[string]KindSettings `yaml:"irregularities" validate:"dive,keys,irregularity_kind,endkeys"`

	// =========================================================================
	// POOL SETTINGS
	// =========================================================================

	// Vendors is the pool of normal business vendors for random
	// transactions. Required whenever num_transactions > 0.
	// Default: a built-in pool of plausible business vendors
	Vendors []string `yaml:"vendors"`

	// PersonalVendors is the pool the personal-expense irregularity draws
	// replacement vendors from.
	// Default: a built-in pool of consumer-facing vendors
	PersonalVendors []string `yaml:"personal_vendors"`

	// PersonalExpenseDescriptions is the pool the personal-expense
	// irregularity draws replacement descriptions from.
	// Default: a built-in pool of personal purchase descriptions
	PersonalExpenseDescriptions []string `yaml:"personal_expense_descriptions"`

	// RecurringTransactions lists the monthly recurring templates. Each
	// template emits one transaction per calendar month in range.
	RecurringTransactions []RecurringTemplate `yaml:"recurring_transactions" validate:"dive"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// Output controls where and in which formats results are written.
	Output OutputSettings `yaml:"output"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Start and End are the parsed date bounds, filled in by Validate.
	Start time.Time `yaml:"-"`
	End   time.Time `yaml:"-"`
}

// KindSettings configures one irregularity kind in the plan.
type KindSettings struct {
	// Enabled gates the kind. A disabled kind is never applied, regardless
	// of its count.
	Enabled bool `yaml:"enabled"`

	// Count is the requested number of applications. Zero with Enabled set
	// falls back to the kind's built-in default count.
	Count int `yaml:"count"`

	// Threshold is the budget fraction for threshold-bearing kinds
	// (cumulative_irregularity). Zero falls back to the kind's built-in
	// default.
	Threshold float64 `yaml:"threshold"`
}

// RecurringTemplate describes one monthly recurring transaction.
type RecurringTemplate struct {
	// Vendor receiving the recurring payment.
	Vendor string `yaml:"vendor" validate:"required"`

	// Amount is the base monthly amount. Each occurrence is jittered by a
	// few percent to look organic.
	Amount float64 `yaml:"amount" validate:"gt=0"`

	// Day is the day of month the payment lands on, clamped to the last
	// day of shorter months.
	Day int `yaml:"day" validate:"min=1,max=31"`

	// Description carried by every occurrence.
	Description string `yaml:"description"`
}

// OutputSettings controls result serialization.
type OutputSettings struct {
	// Directory receives all output files.
	// Default: "./output"
	Directory string `yaml:"directory"`

	// Formats selects the writers to run. Valid values: "csv", "xlsx".
	// Default: ["csv"]
	Formats []string `yaml:"formats" validate:"dive,oneof=csv xlsx"`

	// Timestamped places each run's files in a fresh timestamped
	// subdirectory instead of overwriting previous output.
	// Default: false
	Timestamped bool `yaml:"timestamped"`

	// TransactionsFile is the transactions CSV file name.
	// Default: "fake_transactions.csv"
	TransactionsFile string `yaml:"transactions_file"`

	// IrregularitiesFile is the ground-truth log CSV file name.
	// Default: "irregularities.csv"
	IrregularitiesFile string `yaml:"irregularities_file"`

	// WorkbookFile is the XLSX workbook file name, holding both sheets.
	// Default: "fake_transactions.xlsx"
	WorkbookFile string `yaml:"workbook_file"`
}

// envOverrides holds raw environment values layered over the file.
type envOverrides struct {
	Seed            *int64  `env:"FAKEGEN_SEED"`
	NumTransactions *int    `env:"FAKEGEN_NUM_TRANSACTIONS"`
	StartDate       *string `env:"FAKEGEN_START_DATE"`
	EndDate         *string `env:"FAKEGEN_END_DATE"`
	OutputDirectory *string `env:"FAKEGEN_OUTPUT_DIR"`
	LogLevel        *string `env:"FAKEGEN_LOG_LEVEL"`
}

// =============================================================================
// DEFAULT POOLS
// =============================================================================

// Built-in pools used when the configuration leaves them out entirely. An
// explicitly empty pool is preserved so validation can reject it.
var (
	defaultVendors = []string{
		"Acme Office Supply",
		"TechFlow Solutions",
		"Global Logistics Co",
		"Metro Utilities",
		"Summit Consulting",
		"Apex Equipment Rental",
		"CityView Catering",
		"BrightPath Marketing",
	}

	defaultPersonalVendors = []string{
		"Luxury Resort & Spa",
		"Designer Boutique",
		"Gourmet Steakhouse",
		"Premium Electronics",
		"City Golf Club",
	}

	defaultPersonalDescriptions = []string{
		"Weekend Getaway",
		"Clothing Purchase",
		"Family Dinner",
		"Home Theater System",
		"Golf Membership Dues",
	}
)

// =============================================================================
// LOADING
// =============================================================================

// Load reads, overlays, defaults, and validates a configuration file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the validated Config.
//   - An error if the file cannot be read, parsed, or validated.
func Load(configPath string) (*Config, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Layer environment overrides on top of the file.
	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}

	// Apply default values.
	applyDefaults(&config)

	// Validate the configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides replaces file values with any FAKEGEN_* variables present
// in the environment.
func applyEnvOverrides(config *Config) error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if raw.Seed != nil {
		config.Seed = *raw.Seed
	}
	if raw.NumTransactions != nil {
		config.NumTransactions = *raw.NumTransactions
	}
	if raw.StartDate != nil {
		config.StartDate = *raw.StartDate
	}
	if raw.EndDate != nil {
		config.EndDate = *raw.EndDate
	}
	if raw.OutputDirectory != nil {
		config.Output.Directory = *raw.OutputDirectory
	}
	if raw.LogLevel != nil {
		config.LogLevel = *raw.LogLevel
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
// Pools default only when absent (nil); an explicitly empty list stays empty.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Output.Directory == "" {
		config.Output.Directory = "./output"
	}
	if config.Output.Formats == nil {
		config.Output.Formats = []string{"csv"}
	}
	if config.Output.TransactionsFile == "" {
		config.Output.TransactionsFile = "fake_transactions.csv"
	}
	if config.Output.IrregularitiesFile == "" {
		config.Output.IrregularitiesFile = "irregularities.csv"
	}
	if config.Output.WorkbookFile == "" {
		config.Output.WorkbookFile = "fake_transactions.xlsx"
	}
	if config.Vendors == nil {
		config.Vendors = defaultVendors
	}
	if config.PersonalVendors == nil {
		config.PersonalVendors = defaultPersonalVendors
	}
	if config.PersonalExpenseDescriptions == nil {
		config.PersonalExpenseDescriptions = defaultPersonalDescriptions
	}
}

// =============================================================================
// ENGINE ADAPTERS
// =============================================================================

// Plan converts the configured irregularity settings into the engine's plan
// form.
func (c *Config) Plan() irregularity.Plan {
	plan := make(irregularity.Plan, len(c.Irregularities))
	for kind, ks := range c.Irregularities {
		plan[irregularity.Kind(kind)] = irregularity.PlanEntry{
			Count:     ks.Count,
			Threshold: ks.Threshold,
			Enabled:   ks.Enabled,
		}
	}
	return plan
}

// InjectionParams builds the transform parameters shared by every
// irregularity application.
func (c *Config) InjectionParams() irregularity.Params {
	return irregularity.Params{
		EndDate:              c.End,
		PersonalVendors:      c.PersonalVendors,
		PersonalDescriptions: c.PersonalExpenseDescriptions,
	}
}

// WantsFormat reports whether the named output format is enabled.
func (c *Config) WantsFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}
