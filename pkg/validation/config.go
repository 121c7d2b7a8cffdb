// Package validation provides input and configuration validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/lifepath/pkg/constants"
)

// ValidateAmount checks that a monetary amount is finite and not negative.
func ValidateAmount(name string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if amount < 0 {
		return fmt.Errorf("%s cannot be negative, got %.2f", name, amount)
	}
	return nil
}

// RequireAmount checks that a monetary amount is present and valid.
func RequireAmount(name string, amount *float64) error {
	if amount == nil {
		return fmt.Errorf("%s is required", name)
	}
	return ValidateAmount(name, *amount)
}

// ValidateYears checks that a duration in years is positive.
func ValidateYears(name string, years int) error {
	if years <= 0 {
		return fmt.Errorf("%s must be greater than zero, got %d", name, years)
	}
	return nil
}

// ValidateRate checks that an annual rate is a finite, non-negative fraction.
func ValidateRate(name string, rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if rate < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", name, rate)
	}
	return nil
}

// ValidatePlan checks that a path plan is one of the supported kinds.
func ValidatePlan(plan string) error {
	if plan != constants.PlanCollege && plan != constants.PlanWorkforce {
		return fmt.Errorf("expected plan of %s or %s, got %q",
			constants.PlanCollege, constants.PlanWorkforce, plan)
	}
	return nil
}

// ProfileValidator inspects a complete profile for combinations that are
// valid but likely mistaken.
type ProfileValidator struct {
	Dream   DreamConfig
	Reality RealityConfig
	Path    PathConfig
}

// DreamConfig is the part of a dream profile the validator looks at.
type DreamConfig struct {
	TargetCity      string
	AnnualDreamCost float64
}

// RealityConfig is the part of a reality profile the validator looks at.
type RealityConfig struct {
	MonthlyIncome   float64
	MonthlyExpenses float64
}

// PathConfig is the part of a path plan the validator looks at.
type PathConfig struct {
	Plan                    string
	AnnualTuition           float64
	FinancialAid            float64
	ProjectedStartingSalary float64
}

// ValidateAll validates the profile and returns warnings
func (pv *ProfileValidator) ValidateAll() []string {
	var warnings []string

	if pv.Dream.AnnualDreamCost == 0 {
		warnings = append(warnings, fmt.Sprintf("Dream in '%s' has no costs - it will always be affordable",
			pv.Dream.TargetCity))
	}

	if pv.Reality.MonthlyExpenses > pv.Reality.MonthlyIncome {
		warnings = append(warnings, fmt.Sprintf("Current expenses exceed current income (%.2f > %.2f)",
			pv.Reality.MonthlyExpenses, pv.Reality.MonthlyIncome))
	}

	if pv.Path.ProjectedStartingSalary == 0 {
		warnings = append(warnings, "Path has no projected starting salary - loan burden cannot be computed")
	}

	if pv.Path.Plan == constants.PlanCollege && pv.Path.FinancialAid > pv.Path.AnnualTuition {
		warnings = append(warnings, fmt.Sprintf("Financial aid exceeds annual tuition (%.2f > %.2f) - no loan will be taken",
			pv.Path.FinancialAid, pv.Path.AnnualTuition))
	}

	return warnings
}
