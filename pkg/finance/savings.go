package finance

import (
	"encoding/json"
	"math"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/mathutil"
)

// SavingsProjection describes how long monthly contributions with compound
// monthly returns take to reach a target amount.
//
// When the goal is unreachable Months and Years are +Inf and the contributed
// and interest figures are nil.
type SavingsProjection struct {
	Months           float64
	Years            float64
	TotalContributed *float64
	InterestEarned   *float64
}

// Reachable reports whether the target can be reached at all.
func (p SavingsProjection) Reachable() bool {
	return !math.IsInf(p.Months, 1)
}

// MarshalJSON encodes an unreachable projection with null months and years,
// since JSON has no representation for infinity.
func (p SavingsProjection) MarshalJSON() ([]byte, error) {
	type wire struct {
		Months           *float64 `json:"months"`
		Years            *float64 `json:"years"`
		TotalContributed *float64 `json:"total_contributed,omitempty"`
		InterestEarned   *float64 `json:"interest_earned,omitempty"`
		Reachable        bool     `json:"reachable"`
	}
	out := wire{
		TotalContributed: p.TotalContributed,
		InterestEarned:   p.InterestEarned,
		Reachable:        p.Reachable(),
	}
	if out.Reachable {
		months, years := p.Months, p.Years
		out.Months = &months
		out.Years = &years
	}
	return json.Marshal(out)
}

// SavingsTimeline solves the future value of an annuity for time: the number
// of monthly contributions needed to reach targetAmount when each month earns
// annualReturn/12. annualReturn is a fraction (0.07 for 7%).
//
// A contribution of zero or less never reaches the target. The caller must
// keep 1 + targetAmount*r/monthlyContribution positive, otherwise the
// logarithm is undefined and the result is NaN.
func SavingsTimeline(targetAmount, monthlyContribution, annualReturn float64) SavingsProjection {
	if monthlyContribution <= 0 {
		return SavingsProjection{
			Months: math.Inf(1),
			Years:  math.Inf(1),
		}
	}

	monthlyRate := annualReturn / constants.MonthsPerYear

	var months float64
	if monthlyRate == 0 {
		months = targetAmount / monthlyContribution
	} else {
		months = math.Log(1+(targetAmount*monthlyRate)/monthlyContribution) / math.Log(1+monthlyRate)
	}

	totalContributed := mathutil.Round(monthlyContribution * months)
	interestEarned := mathutil.Round(targetAmount - monthlyContribution*months)

	return SavingsProjection{
		Months:           mathutil.RoundTo(months, constants.MonthsPlaces),
		Years:            mathutil.RoundTo(months/constants.MonthsPerYear, constants.MonthsPlaces),
		TotalContributed: &totalContributed,
		InterestEarned:   &interestEarned,
	}
}

// DefaultSavingsTimeline projects savings using the default annual return.
func DefaultSavingsTimeline(targetAmount, monthlyContribution float64) SavingsProjection {
	return SavingsTimeline(targetAmount, monthlyContribution, constants.DefaultSavingsAnnualReturn)
}
