// Package finance provides the financial planning calculations: annual cost
// aggregation, expense totals, income/expense gap analysis and savings
// projections.
//
// Every function is pure. Inputs are expected to be parsed and validated by
// the caller; values outside a function's domain (for example a return rate
// that makes the savings logarithm undefined) produce Inf or NaN rather than
// an error.
package finance

import (
	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/mathutil"
)

// MonthlyCosts holds the monthly cost of each dream budget category. A field
// left unset counts as zero.
type MonthlyCosts struct {
	Housing        float64
	Transportation float64
	Food           float64
	Entertainment  float64
	Other          float64
}

// Expense is a single itemized monthly expense.
type Expense struct {
	Category string
	Amount   float64
}

// DreamSource provides the annual cost of a dream lifestyle.
type DreamSource interface {
	GetAnnualDreamCost() float64
}

// RealitySource provides the itemized monthly expenses of a reality snapshot.
type RealitySource interface {
	GetExpenses() []Expense
}

// PathSource provides the income side of a path plan.
type PathSource interface {
	GetPlan() string
	GetProjectedStartingSalary() float64
	GetEstimatedLoanPayment() float64
}

// GapAnalysis is the comparison between a dream's cost and the income left
// after expenses and loan payments.
type GapAnalysis struct {
	MonthlyDreamCost   float64 `json:"monthly_dream_cost" yaml:"monthly_dream_cost"`
	AnnualDreamCost    float64 `json:"annual_dream_cost" yaml:"annual_dream_cost"`
	MonthlySalary      float64 `json:"monthly_salary" yaml:"monthly_salary"`
	AnnualSalary       float64 `json:"annual_salary" yaml:"annual_salary"`
	MonthlyExpenses    float64 `json:"monthly_expenses" yaml:"monthly_expenses"`
	MonthlyLoanPayment float64 `json:"monthly_loan_payment" yaml:"monthly_loan_payment"`
	AvailableMonthly   float64 `json:"available_monthly" yaml:"available_monthly"`
	MonthlyGap         float64 `json:"monthly_gap" yaml:"monthly_gap"`
	AnnualGap          float64 `json:"annual_gap" yaml:"annual_gap"`
	DreamAffordability float64 `json:"dream_affordability" yaml:"dream_affordability"`
	LoanBurden         float64 `json:"loan_burden" yaml:"loan_burden"`
	CanAffordDream     bool    `json:"can_afford_dream" yaml:"can_afford_dream"`
}

// AnnualDreamCost returns the yearly cost of the monthly dream budget. The
// result is not rounded.
func AnnualDreamCost(costs MonthlyCosts) float64 {
	monthlyTotal := costs.Housing +
		costs.Transportation +
		costs.Food +
		costs.Entertainment +
		costs.Other
	return monthlyTotal * constants.MonthsPerYear
}

// MonthlyExpensesTotal sums the amounts of all expenses.
func MonthlyExpensesTotal(expenses []Expense) float64 {
	total := 0.0
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total
}

// FinancialGap compares the monthly cost of the dream with the salary left
// after current expenses and any student loan payment. Money values are
// rounded to cents and percentages to one decimal only once every figure has
// been computed; the verdict uses the unrounded gap.
func FinancialGap(dream DreamSource, reality RealitySource, path PathSource) GapAnalysis {
	annualDreamCost := dream.GetAnnualDreamCost()
	projectedSalary := path.GetProjectedStartingSalary()

	monthlyDreamCost := annualDreamCost / constants.MonthsPerYear
	monthlySalary := projectedSalary / constants.MonthsPerYear
	monthlyExpenses := MonthlyExpensesTotal(reality.GetExpenses())

	monthlyLoanPayment := 0.0
	if path.GetPlan() == constants.PlanCollege {
		monthlyLoanPayment = path.GetEstimatedLoanPayment()
	}

	// May go negative when expenses outrun the salary.
	availableMonthly := monthlySalary - monthlyExpenses - monthlyLoanPayment

	monthlyGap := monthlyDreamCost - availableMonthly
	annualGap := monthlyGap * constants.MonthsPerYear

	dreamAffordability := mathutil.Percentage(availableMonthly, monthlyDreamCost, constants.FullyAffordablePercentage)
	loanBurden := mathutil.Percentage(monthlyLoanPayment, monthlySalary, 0)

	return GapAnalysis{
		MonthlyDreamCost:   mathutil.Round(monthlyDreamCost),
		AnnualDreamCost:    mathutil.Round(annualDreamCost),
		MonthlySalary:      mathutil.Round(monthlySalary),
		AnnualSalary:       mathutil.Round(projectedSalary),
		MonthlyExpenses:    mathutil.Round(monthlyExpenses),
		MonthlyLoanPayment: mathutil.Round(monthlyLoanPayment),
		AvailableMonthly:   mathutil.Round(availableMonthly),
		MonthlyGap:         mathutil.Round(monthlyGap),
		AnnualGap:          mathutil.Round(annualGap),
		DreamAffordability: mathutil.RoundPercent(dreamAffordability),
		LoanBurden:         mathutil.RoundPercent(loanBurden),
		CanAffordDream:     monthlyGap <= 0,
	}
}
