// Package constants provides shared constants for the credit simulator.
package constants

import "time"

// DateLayout is the format expected for start dates in requests and config
// files and is also the output format for due dates.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places kept for currency amounts
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxDownPaymentPercent caps a percentage down payment
	MaxDownPaymentPercent = 90.0

	// MaxTermMonths caps the term of a loan (50 years)
	MaxTermMonths = 600

	// MaxAmount caps prices and fee amounts fed to the engine so totals stay finite
	MaxAmount = 1e12

	// MaxRatePct caps annual, monthly and fee rates expressed as percentages
	MaxRatePct = 1000.0

	// BalanceEpsilon is the residual below which a running balance is treated
	// as fully paid off.
	BalanceEpsilon = 0.005
)

// Tolerances
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RateSolverTolerance is the convergence threshold for implied rate solving
	RateSolverTolerance = 1e-10

	// RateSolverMaxIterations bounds the implied rate bisection
	RateSolverMaxIterations = 200
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON emits the adapter view as JSON
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of configuration keys
	EnvPrefix = "CREDIT"
)

// Simulation defaults
const (
	// DefaultTermMonths is used when the configuration does not set one
	DefaultTermMonths = 48

	// DefaultDownPaymentPercent is used by the CLI when no down payment is given
	DefaultDownPaymentPercent = 25.0
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultMetricsPath is where Prometheus metrics are exposed
	DefaultMetricsPath = "/metrics"

	// DefaultServiceName identifies the process in traces
	DefaultServiceName = "credit-simulator"

	// DefaultShutdownTimeout bounds graceful server shutdown
	DefaultShutdownTimeout = 10 * time.Second
)
