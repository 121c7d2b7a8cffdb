// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/lifepath/internal/profile"
	"github.com/iwvelando/lifepath/pkg/constants"
)

// FindExpense finds the first expense with the given category.
// Returns a pointer to the expense if found, nil otherwise.
func FindExpense(expenses []profile.Expense, category string) *profile.Expense {
	for i := range expenses {
		if expenses[i].Category == category {
			return &expenses[i]
		}
	}
	return nil
}

// AssertCurrency fails the test when got and want differ by more than a cent.
func AssertCurrency(tb testing.TB, name string, got, want float64) {
	tb.Helper()
	AssertClose(tb, name, got, want, constants.CurrencyTolerance)
}

// AssertClose fails the test when got and want differ by more than tolerance.
// Two infinities of the same sign are equal.
func AssertClose(tb testing.TB, name string, got, want, tolerance float64) {
	tb.Helper()
	if math.IsInf(want, 0) && got == want {
		return
	}
	if math.IsNaN(got) || math.Abs(got-want) > tolerance {
		tb.Errorf("%s = %v, expected %v (tolerance %v)", name, got, want, tolerance)
	}
}
