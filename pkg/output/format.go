// Package output provides utilities for formatting and displaying planning results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/lifepath/internal/profile"
	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/finance"
	"github.com/iwvelando/lifepath/pkg/format"
	"github.com/iwvelando/lifepath/pkg/mathutil"
)

var (
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorOrange = lipgloss.Color("#DA702C")
	colorDim    = lipgloss.Color("#6F6E69")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(colorDim)
	positiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	negativeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	warnStyle     = lipgloss.NewStyle().Foreground(colorOrange)
)

// Row is one labelled figure. Value is for people, Raw is for machines.
type Row struct {
	Label string
	Value string
	Raw   string
}

// Report is a titled list of figures with an optional verdict and warnings.
type Report struct {
	Title    string
	Rows     []Row
	Summary  string
	Positive bool
	Warnings []string
}

// GapReport describes a gap analysis.
func GapReport(p profile.Profile, gap finance.GapAnalysis, warnings []string) Report {
	report := Report{Title: "Financial gap", Warnings: warnings}
	if p.Dream != nil && p.Dream.TargetCity != "" {
		report.Title = "Financial gap for " + p.Dream.TargetCity
	}

	report.Rows = []Row{
		money("Monthly dream cost", gap.MonthlyDreamCost),
		money("Annual dream cost", gap.AnnualDreamCost),
		money("Monthly salary", gap.MonthlySalary),
		money("Annual salary", gap.AnnualSalary),
		money("Monthly expenses", gap.MonthlyExpenses),
		money("Monthly loan payment", gap.MonthlyLoanPayment),
		money("Available monthly", gap.AvailableMonthly),
		money("Monthly gap", gap.MonthlyGap),
		money("Annual gap", gap.AnnualGap),
		percent("Dream affordability", gap.DreamAffordability),
		percent("Loan burden", gap.LoanBurden),
	}

	report.Positive = gap.CanAffordDream
	if gap.CanAffordDream {
		report.Summary = fmt.Sprintf("The dream is affordable with %s to spare each month", format.Currency(-gap.MonthlyGap))
	} else {
		report.Summary = fmt.Sprintf("The dream is short by %s each month", format.Currency(gap.MonthlyGap))
	}
	return report
}

// LoanReport describes a fixed-rate loan payment.
func LoanReport(principal, annualRate float64, termYears int, payment float64) Report {
	totalPaid := mathutil.Round(payment * float64(termYears*constants.MonthsPerYear))
	return Report{
		Title: "Loan payment",
		Rows: []Row{
			money("Principal", principal),
			percent("Annual rate", annualRate*constants.PercentageMultiplier),
			{Label: "Term (years)", Value: strconv.Itoa(termYears), Raw: strconv.Itoa(termYears)},
			money("Monthly payment", payment),
			money("Total paid", totalPaid),
		},
		Summary:  fmt.Sprintf("Pay %s a month for %d years", format.Currency(payment), termYears),
		Positive: true,
	}
}

// SavingsReport describes a savings projection.
func SavingsReport(target, contribution, annualReturn float64, projection finance.SavingsProjection) Report {
	report := Report{
		Title: "Savings timeline",
		Rows: []Row{
			money("Target", target),
			money("Monthly contribution", contribution),
			percent("Annual return", annualReturn*constants.PercentageMultiplier),
			{Label: "Months", Value: format.Months(projection.Months), Raw: format.Fixed(projection.Months, constants.MonthsPlaces)},
			{Label: "Years", Value: format.Months(projection.Years), Raw: format.Fixed(projection.Years, constants.MonthsPlaces)},
			optionalMoney("Total contributed", projection.TotalContributed),
			optionalMoney("Interest earned", projection.InterestEarned),
		},
		Positive: projection.Reachable(),
	}
	if projection.Reachable() {
		report.Summary = fmt.Sprintf("The target is reached in %s months", format.Months(projection.Months))
	} else {
		report.Summary = "The target is never reached without a positive monthly contribution"
	}
	return report
}

// Write renders the report in the named output format.
func Write(w io.Writer, outputFormat string, report Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	}
	return fmt.Errorf("expected output format of %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report Report) error {
	width := 0
	for _, row := range report.Rows {
		if len(row.Label) > width {
			width = len(row.Label)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("--- " + report.Title + " ---"))
	b.WriteString("\n")
	for _, row := range report.Rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, row.Label)))
		b.WriteString(" | ")
		b.WriteString(row.Value)
		b.WriteString("\n")
	}
	if report.Summary != "" {
		style := negativeStyle
		if report.Positive {
			style = positiveStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(report.Summary))
		b.WriteString("\n")
	}
	for _, warning := range report.Warnings {
		b.WriteString(warnStyle.Render("Warning: " + warning))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write([]string{row.Label, row.Raw}); err != nil {
			return err
		}
	}
	for _, warning := range report.Warnings {
		if err := writer.Write([]string{"warning", warning}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func money(label string, amount float64) Row {
	return Row{Label: label, Value: format.Currency(amount), Raw: format.Fixed(amount, constants.CurrencyPlaces)}
}

func optionalMoney(label string, amount *float64) Row {
	if amount == nil {
		return Row{Label: label, Value: format.NotApplicable}
	}
	return money(label, *amount)
}

func percent(label string, value float64) Row {
	return Row{Label: label, Value: format.Percent(value), Raw: format.Fixed(value, constants.PercentagePlaces)}
}
