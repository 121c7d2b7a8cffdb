package server

import (
	"strings"
	"time"

	"github.com/iwvelando/lifepath/internal/config"
	"github.com/iwvelando/lifepath/internal/profile"
	"github.com/iwvelando/lifepath/pkg/constants"
	"golang.org/x/crypto/bcrypt"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string
	MaxBodySize     int64
	ShutdownTimeout time.Duration
	Version         string
	Planning        config.PlanningConfig
	// PasswordCost is the bcrypt cost used when registering users.
	PasswordCost int
}

// NewConfig derives the server parameters from the application configuration.
func NewConfig(conf *config.Configuration, version string) Config {
	cfg := Config{
		Version: version,
		Planning: config.PlanningConfig{
			LoanAnnualRate:      constants.DefaultLoanAnnualRate,
			LoanTermYears:       constants.DefaultLoanTermYears,
			SavingsAnnualReturn: constants.DefaultSavingsAnnualReturn,
		},
	}
	if conf != nil {
		cfg.Address = conf.Server.Address
		cfg.MaxBodySize = conf.Server.MaxBodySizeBytes()
		cfg.Planning = conf.Planning
	}
	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = constants.DefaultShutdownTimeout
	}
	c.Version = strings.TrimSpace(c.Version)
	if c.Version == "" {
		c.Version = constants.DefaultVersion
	}
	if c.Planning.LoanTermYears <= 0 {
		c.Planning.LoanTermYears = constants.DefaultLoanTermYears
	}
	if c.Planning.LoanAnnualRate < 0 {
		c.Planning.LoanAnnualRate = constants.DefaultLoanAnnualRate
	}
	if c.Planning.SavingsAnnualReturn < 0 {
		c.Planning.SavingsAnnualReturn = constants.DefaultSavingsAnnualReturn
	}
	if c.PasswordCost < bcrypt.MinCost || c.PasswordCost > bcrypt.MaxCost {
		c.PasswordCost = bcrypt.DefaultCost
	}
}

func (c Config) loanTerms() profile.LoanTerms {
	return profile.LoanTerms{
		AnnualRate: c.Planning.LoanAnnualRate,
		TermYears:  c.Planning.LoanTermYears,
	}
}
