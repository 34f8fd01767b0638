// Package constants provides shared constants for the deal-metrics application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the average number of nights in a month used for
	// short-term rental revenue (365 / 12).
	DaysPerMonth = 365.0 / 12.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxLoanTermMonths is the longest schedule Amortize will build (100 years)
	MaxLoanTermMonths = 1200
)

// Exit strategy tags understood by the scenario orchestrator.
const (
	StrategyRent   = "rent"
	StrategyAirbnb = "airbnb"
	StrategyFlip   = "flip"
)

// IRR solver defaults
const (
	// IRRInitialGuess is the starting rate (as a decimal) for Newton-Raphson.
	IRRInitialGuess = 0.1

	// IRRMaxIterations caps the solver so pathological series terminate.
	IRRMaxIterations = 100

	// IRRTolerance is the NPV magnitude, per unit of initial investment, below
	// which the solver reports convergence.
	IRRTolerance = 1e-7
)

// Scenario defaults
const (
	// DefaultHoldMonths is the hold period assumed for rentals when none is given.
	DefaultHoldMonths = 60
)

// Sensitivity defaults
const (
	// DefaultVariationPercent is the +/- perturbation applied to each input.
	DefaultVariationPercent = 10.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default deal book file name
	DefaultConfigFile = "deals.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout bounds graceful shutdown of in-flight requests
	DefaultShutdownTimeout = 10 * time.Second
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
