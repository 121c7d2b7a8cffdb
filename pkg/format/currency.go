// Package format renders money, percentages and durations for display.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotApplicable is shown for values that cannot be displayed, such as an
// infinite savings timeline.
const NotApplicable = "n/a"

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if !finite(amount) {
		return NotApplicable
	}
	formatted := formatPositiveCurrency(amount)
	if negative(amount, constants.CurrencyPlaces) {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if !finite(amount) {
		return NotApplicable
	}
	sign := ""
	if negative(amount, constants.CurrencyPlaces) {
		sign = "-"
	}
	return sign + formatPositiveCurrency(amount)
}

// Percent returns a percentage with one decimal place (e.g., "42.5%").
func Percent(value float64) string {
	if !finite(value) {
		return NotApplicable
	}
	return Fixed(value, constants.PercentagePlaces) + "%"
}

// Months returns a month count with one decimal place, or "never" for an
// unreachable timeline.
func Months(months float64) string {
	if math.IsInf(months, 1) {
		return "never"
	}
	if !finite(months) {
		return NotApplicable
	}
	return Fixed(months, constants.MonthsPlaces)
}

// Fixed returns value rounded to the given places the same way as
// mathutil.RoundTo, with no separators. Suitable for machine-readable output.
func Fixed(value float64, places int32) string {
	if !finite(value) {
		return NotApplicable
	}
	return mathutil.RoundDecimal(value, places).StringFixed(places)
}

func formatPositiveCurrency(value float64) string {
	fixed := mathutil.RoundDecimal(value, constants.CurrencyPlaces).Abs().StringFixed(constants.CurrencyPlaces)
	parts := strings.SplitN(fixed, ".", 2)
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	intPart := parts[0]
	if whole, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		intPart = printer.Sprintf("%d", whole)
	}
	return intPart + "." + decPart
}

func negative(value float64, places int32) bool {
	return mathutil.RoundDecimal(value, places).IsNegative()
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
