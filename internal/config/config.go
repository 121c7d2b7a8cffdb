// Package config defines the application configuration and loads it from a
// YAML file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for lifepath.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Store    StoreConfig    `yaml:"store,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Planning PlanningConfig `yaml:"planning,omitempty"`
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

// StoreConfig selects and configures the user store.
type StoreConfig struct {
	Backend          string      `yaml:"backend,omitempty"` // memory, sqlite, neo4j
	SQLitePath       string      `yaml:"sqlitePath,omitempty"`
	Neo4j            Neo4jConfig `yaml:"neo4j,omitempty"`
	FallbackToMemory bool        `yaml:"fallbackToMemory"`
}

// Neo4jConfig describes connectivity to a Neo4j database.
type Neo4jConfig struct {
	URI            string `yaml:"uri,omitempty"`
	Database       string `yaml:"database,omitempty"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	MaxConnections int    `yaml:"maxConnections,omitempty"`
}

// ServerConfig holds the HTTP API parameters.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize string `yaml:"maxBodySize,omitempty"`
}

// PlanningConfig holds the rates used when the caller does not supply one.
type PlanningConfig struct {
	LoanAnnualRate      float64 `yaml:"loanAnnualRate"`
	LoanTermYears       int     `yaml:"loanTermYears"`
	SavingsAnnualReturn float64 `yaml:"savingsAnnualReturn"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("store.backend", constants.StoreBackendMemory)
	v.SetDefault("store.sqlitePath", constants.DefaultSQLitePath)
	v.SetDefault("store.fallbackToMemory", true)
	v.SetDefault("store.neo4j.uri", "")
	v.SetDefault("store.neo4j.database", "")
	v.SetDefault("store.neo4j.username", "")
	v.SetDefault("store.neo4j.password", "")
	v.SetDefault("store.neo4j.maxConnections", 10)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("planning.loanAnnualRate", constants.DefaultLoanAnnualRate)
	v.SetDefault("planning.loanTermYears", constants.DefaultLoanTermYears)
	v.SetDefault("planning.savingsAnnualReturn", constants.DefaultSavingsAnnualReturn)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path or a missing file yields the defaults;
// environment variables such as LIFEPATH_STORE_BACKEND override either.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isNotExist(err) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from a reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the configuration for values no component can work with.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateStoreBackend(c.Store.Backend); err != nil {
		return err
	}
	if err := validation.ValidateRate("planning.loanAnnualRate", c.Planning.LoanAnnualRate); err != nil {
		return err
	}
	if err := validation.ValidateYears("planning.loanTermYears", c.Planning.LoanTermYears); err != nil {
		return err
	}
	if err := validation.ValidateRate("planning.savingsAnnualReturn", c.Planning.SavingsAnnualReturn); err != nil {
		return err
	}
	if _, err := ParseSize(c.Server.MaxBodySize); err != nil {
		return err
	}
	return nil
}

// MaxBodySizeBytes returns the configured request body limit in bytes.
func (s ServerConfig) MaxBodySizeBytes() int64 {
	size, err := ParseSize(s.MaxBodySize)
	if err != nil || size <= 0 {
		return constants.DefaultMaxBodySizeBytes
	}
	return size
}
