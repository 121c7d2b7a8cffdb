package main

import (
	"fmt"

	"github.com/iwvelando/lifepath/internal/profile"
	"github.com/iwvelando/lifepath/pkg/finance"
	"github.com/iwvelando/lifepath/pkg/loans"
	"github.com/iwvelando/lifepath/pkg/output"
	"github.com/iwvelando/lifepath/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLoanCmd(app *application) *cobra.Command {
	var (
		principal float64
		rate      float64
		years     int
	)

	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Monthly payment of a fixed-rate loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("rate") {
				rate = app.conf.Planning.LoanAnnualRate
			}
			if !cmd.Flags().Changed("years") {
				years = app.conf.Planning.LoanTermYears
			}
			if err := validation.ValidateRate("rate", rate); err != nil {
				return err
			}
			if err := validation.ValidateYears("years", years); err != nil {
				return err
			}

			payment := loans.MonthlyPayment(principal, rate, years)
			app.logger.Debug("computed loan payment",
				zap.String("op", "main.loan"),
				zap.Float64("principal", principal),
				zap.Float64("payment", payment),
			)
			return output.Write(cmd.OutOrStdout(), app.outputFormat, output.LoanReport(principal, rate, years, payment))
		},
	}
	cmd.Flags().Float64Var(&principal, "principal", 0, "amount borrowed")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate as a fraction (default from config)")
	cmd.Flags().IntVar(&years, "years", 0, "repayment term in years (default from config)")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func newSavingsCmd(app *application) *cobra.Command {
	var (
		target       float64
		contribution float64
		rate         float64
	)

	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Months of contributions needed to reach a savings target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("rate") {
				rate = app.conf.Planning.SavingsAnnualReturn
			}
			if err := validation.ValidateAmount("target", target); err != nil {
				return err
			}
			if err := validation.ValidateRate("rate", rate); err != nil {
				return err
			}

			projection := finance.SavingsTimeline(target, contribution, rate)
			if !projection.Reachable() {
				app.logger.Warn("savings target is unreachable without a positive contribution",
					zap.String("op", "main.savings"),
					zap.Float64("contribution", contribution),
				)
			}
			return output.Write(cmd.OutOrStdout(), app.outputFormat, output.SavingsReport(target, contribution, rate, projection))
		},
	}
	cmd.Flags().Float64Var(&target, "target", 0, "amount to save")
	cmd.Flags().Float64Var(&contribution, "contribution", 0, "monthly contribution")
	cmd.Flags().Float64Var(&rate, "rate", 0, "expected annual return as a fraction (default from config)")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("contribution")
	return cmd
}

func newGapCmd(app *application) *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Gap analysis of a profile file (yaml, json or toml)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := profile.LoadFile(profilePath, app.loanTerms())
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			if next := p.NextSection(); next != "" {
				app.logger.Warn("profile is incomplete, missing sections count as empty",
					zap.String("op", "main.gap"),
					zap.String("next_section", next),
				)
			}

			warnings := p.Warnings()
			for _, warning := range warnings {
				app.logger.Warn("Profile warning: "+warning,
					zap.String("op", "main.gap"),
				)
			}

			return output.Write(cmd.OutOrStdout(), app.outputFormat, output.GapReport(*p, p.Analyze(), warnings))
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "path to a profile file")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
