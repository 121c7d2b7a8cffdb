// Package constants provides shared constants for the lifepath application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyPlaces is the number of decimal places kept for money values
	CurrencyPlaces = 2

	// PercentagePlaces is the number of decimal places kept for percentages
	PercentagePlaces = 1

	// MonthsPlaces is the number of decimal places kept for savings timelines
	MonthsPlaces = 1

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Loan and savings defaults
const (
	// DefaultLoanAnnualRate is the annual rate applied to student loans (5%)
	DefaultLoanAnnualRate = 0.05

	// DefaultLoanTermYears is the repayment term applied to student loans
	DefaultLoanTermYears = 10

	// DefaultSavingsAnnualReturn is the expected annual return on savings (7%)
	DefaultSavingsAnnualReturn = 0.07

	// DefaultCollegeYears is the length of a college plan when none is given
	DefaultCollegeYears = 4

	// FullyAffordablePercentage is reported when the dream costs nothing
	FullyAffordablePercentage = 100.0
)

// Path plan kinds
const (
	// PlanCollege is an education path that may incur student debt
	PlanCollege = "college"

	// PlanWorkforce is a direct entry into the workforce
	PlanWorkforce = "workforce"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Store backend constants
const (
	// StoreBackendMemory keeps users in process memory
	StoreBackendMemory = "memory"

	// StoreBackendSQLite persists users to a SQLite database file
	StoreBackendSQLite = "sqlite"

	// StoreBackendNeo4j persists users as nodes in a Neo4j database
	StoreBackendNeo4j = "neo4j"

	// DefaultSQLitePath is the default SQLite database location
	DefaultSQLitePath = "lifepath.db"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment overrides (LIFEPATH_STORE_BACKEND)
	EnvPrefix = "LIFEPATH"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeout is how long in-flight requests get on shutdown
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultVersion is reported when no build version was stamped
	DefaultVersion = "dev"
)
