package main

import (
	"fmt"

	"github.com/iwvelando/lifepath/internal/config"
	"github.com/iwvelando/lifepath/internal/profile"
	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// application holds what every subcommand needs once flags are parsed.
type application struct {
	configPath   string
	logLevel     string
	outputFormat string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCmd() (*cobra.Command, *application) {
	app := &application{}

	root := &cobra.Command{
		Use:           "lifepath",
		Short:         "Compare a dream lifestyle with the path to pay for it",
		Long:          "Plan the cost of a dream lifestyle against current expenses, student debt and a projected salary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return app.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&app.outputFormat, "output-format", "", "type of output override: pretty, csv")

	root.AddCommand(
		newServeCmd(app),
		newLoanCmd(app),
		newGapCmd(app),
		newSavingsCmd(app),
	)
	return root, app
}

func (a *application) setup() error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	// CLI override takes precedence over config
	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	return validation.ValidateOutputFormat(a.outputFormat)
}

func (a *application) loanTerms() profile.LoanTerms {
	return profile.LoanTerms{
		AnnualRate: a.conf.Planning.LoanAnnualRate,
		TermYears:  a.conf.Planning.LoanTermYears,
	}
}
