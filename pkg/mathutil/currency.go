// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"strconv"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/shopspring/decimal"
)

// exactDigits is enough significant digits to print any float64 exactly.
const exactDigits = 767

// RoundTo rounds a value to the given number of decimal places. Infinite and
// NaN values are returned unchanged since they have no decimal form.
func RoundTo(val float64, places int32) float64 {
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return val
	}
	return RoundDecimal(val, places).InexactFloat64()
}

// RoundDecimal rounds the exact binary value of val to the given places,
// breaking exact ties to the even digit. 2.675 is stored as 2.67499... and
// rounds to 2.67; 0.125 is an exact tie and rounds to 0.12. val must be
// finite.
func RoundDecimal(val float64, places int32) decimal.Decimal {
	exact, err := decimal.NewFromString(strconv.FormatFloat(val, 'e', exactDigits, 64))
	if err != nil {
		exact = decimal.NewFromFloat(val)
	}
	return exact.RoundBank(places)
}

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return RoundTo(val, constants.CurrencyPlaces)
}

// RoundPercent rounds a percentage to one decimal.
func RoundPercent(val float64) float64 {
	return RoundTo(val, constants.PercentagePlaces)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Percentage returns value as a percentage of total, or fallback when total is
// not positive.
func Percentage(value, total, fallback float64) float64 {
	if total > 0 {
		return value / total * constants.PercentageMultiplier
	}
	return fallback
}
