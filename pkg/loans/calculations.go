// Package loans provides loan payment calculations.
package loans

import (
	"math"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/mathutil"
)

// MonthlyPayment calculates the level monthly payment for a loan using the
// standard amortization formula. annualRate is a fraction (0.05 for 5%).
//
// A principal of zero or less has no payment. Negative rates and zero terms
// are not validated; callers are expected to reject them beforehand.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 {
		return 0
	}

	monthlyRate := annualRate / constants.MonthsPerYear
	numPayments := float64(termYears * constants.MonthsPerYear)

	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by the number of payments
		return mathutil.Round(principal / numPayments)
	}

	power := math.Pow(1+monthlyRate, numPayments)
	payment := principal * (monthlyRate * power) / (power - 1)
	return mathutil.Round(payment)
}

// DefaultMonthlyPayment calculates the monthly payment using the default
// student loan rate and term.
func DefaultMonthlyPayment(principal float64) float64 {
	return MonthlyPayment(principal, constants.DefaultLoanAnnualRate, constants.DefaultLoanTermYears)
}

// TotalDebt returns the debt accumulated over a college plan: the annual
// tuition not covered by aid, for every year of attendance.
func TotalDebt(annualTuition, financialAid float64, years int) float64 {
	return (annualTuition - financialAid) * float64(years)
}
