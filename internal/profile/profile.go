// Package profile defines the dream, reality and path records a user fills in
// during onboarding. Every amount is optional: an absent field is nil in the
// record and reads as its default through the accessor methods, so partially
// filled profiles can always be analyzed.
package profile

import (
	"errors"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/finance"
	"github.com/iwvelando/lifepath/pkg/validation"
)

// ErrUnknownPlan is returned for a path plan that is neither college nor workforce.
var ErrUnknownPlan = errors.New("unknown path plan")

// Profile groups the three onboarding sections of a user.
type Profile struct {
	Dream   *Dream   `json:"dream,omitempty" yaml:"dream,omitempty" toml:"dream,omitempty"`
	Reality *Reality `json:"reality,omitempty" yaml:"reality,omitempty" toml:"reality,omitempty"`
	Path    *Path    `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
}

// Dream is the target lifestyle and its monthly budget.
type Dream struct {
	TargetCity         string   `json:"target_city" yaml:"target_city" toml:"target_city"`
	HousingCost        *float64 `json:"housing_cost,omitempty" yaml:"housing_cost,omitempty" toml:"housing_cost,omitempty"`
	TransportationCost *float64 `json:"transportation_cost,omitempty" yaml:"transportation_cost,omitempty" toml:"transportation_cost,omitempty"`
	FoodCost           *float64 `json:"food_cost,omitempty" yaml:"food_cost,omitempty" toml:"food_cost,omitempty"`
	EntertainmentCost  *float64 `json:"entertainment_cost,omitempty" yaml:"entertainment_cost,omitempty" toml:"entertainment_cost,omitempty"`
	OtherCost          *float64 `json:"other_cost,omitempty" yaml:"other_cost,omitempty" toml:"other_cost,omitempty"`
	AnnualDreamCost    *float64 `json:"annual_dream_cost,omitempty" yaml:"annual_dream_cost,omitempty" toml:"annual_dream_cost,omitempty"`
}

// Reality is the current income and itemized monthly expenses.
type Reality struct {
	MonthlyIncome *float64  `json:"monthly_income,omitempty" yaml:"monthly_income,omitempty" toml:"monthly_income,omitempty"`
	Expenses      []Expense `json:"expenses" yaml:"expenses" toml:"expenses"`
}

// Expense is a single itemized expense. Categories need not be unique.
type Expense struct {
	Category string   `json:"category" yaml:"category" toml:"category"`
	Amount   *float64 `json:"amount,omitempty" yaml:"amount,omitempty" toml:"amount,omitempty"`
}

// Path is the route to the projected salary. College specific fields are nil
// for a workforce plan.
type Path struct {
	Plan                    string   `json:"plan" yaml:"plan" toml:"plan"`
	CollegeName             string   `json:"college_name,omitempty" yaml:"college_name,omitempty" toml:"college_name,omitempty"`
	AnnualTuition           *float64 `json:"annual_tuition,omitempty" yaml:"annual_tuition,omitempty" toml:"annual_tuition,omitempty"`
	FinancialAid            *float64 `json:"financial_aid,omitempty" yaml:"financial_aid,omitempty" toml:"financial_aid,omitempty"`
	Years                   *int     `json:"years,omitempty" yaml:"years,omitempty" toml:"years,omitempty"`
	TotalDebt               *float64 `json:"total_debt,omitempty" yaml:"total_debt,omitempty" toml:"total_debt,omitempty"`
	EstimatedLoanPayment    *float64 `json:"estimated_loan_payment,omitempty" yaml:"estimated_loan_payment,omitempty" toml:"estimated_loan_payment,omitempty"`
	ProjectedStartingSalary *float64 `json:"projected_starting_salary,omitempty" yaml:"projected_starting_salary,omitempty" toml:"projected_starting_salary,omitempty"`
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float64 returns a pointer to v, for filling optional amounts.
func Float64(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for filling optional counts.
func Int(v int) *int {
	return &v
}

// Complete reports whether all three sections have been filled in.
func (p Profile) Complete() bool {
	return p.Dream != nil && p.Reality != nil && p.Path != nil
}

// NextSection returns the first onboarding section still missing, or an
// empty string when the profile is complete.
func (p Profile) NextSection() string {
	switch {
	case p.Dream == nil:
		return "dream"
	case p.Reality == nil:
		return "reality"
	case p.Path == nil:
		return "path"
	}
	return ""
}

// Analyze runs the gap analysis over the profile. Missing sections count as
// empty ones.
func (p Profile) Analyze() finance.GapAnalysis {
	dream, reality, path := p.Dream, p.Reality, p.Path
	if dream == nil {
		dream = &Dream{}
	}
	if reality == nil {
		reality = &Reality{}
	}
	if path == nil {
		path = &Path{}
	}
	return finance.FinancialGap(dream, reality, path)
}

// Warnings returns likely mistakes in a complete profile. Incomplete profiles
// have no warnings.
func (p Profile) Warnings() []string {
	if !p.Complete() {
		return nil
	}
	validator := validation.ProfileValidator{
		Dream: validation.DreamConfig{
			TargetCity:      p.Dream.TargetCity,
			AnnualDreamCost: p.Dream.GetAnnualDreamCost(),
		},
		Reality: validation.RealityConfig{
			MonthlyIncome:   p.Reality.GetMonthlyIncome(),
			MonthlyExpenses: finance.MonthlyExpensesTotal(p.Reality.GetExpenses()),
		},
		Path: validation.PathConfig{
			Plan:                    p.Path.Plan,
			AnnualTuition:           value(p.Path.AnnualTuition),
			FinancialAid:            value(p.Path.FinancialAid),
			ProjectedStartingSalary: p.Path.GetProjectedStartingSalary(),
		},
	}
	return validator.ValidateAll()
}

// Costs returns the monthly budget with absent categories as zero.
func (d *Dream) Costs() finance.MonthlyCosts {
	return finance.MonthlyCosts{
		Housing:        value(d.HousingCost),
		Transportation: value(d.TransportationCost),
		Food:           value(d.FoodCost),
		Entertainment:  value(d.EntertainmentCost),
		Other:          value(d.OtherCost),
	}
}

// Derive fills in the annual dream cost from the monthly budget.
func (d *Dream) Derive() {
	d.AnnualDreamCost = Float64(finance.AnnualDreamCost(d.Costs()))
}

// GetAnnualDreamCost returns the stored annual cost, or zero when it was
// never derived.
func (d *Dream) GetAnnualDreamCost() float64 {
	return value(d.AnnualDreamCost)
}

// GetMonthlyIncome returns the current monthly income.
func (r *Reality) GetMonthlyIncome() float64 {
	return value(r.MonthlyIncome)
}

// GetExpenses returns the expenses in insertion order with absent amounts as zero.
func (r *Reality) GetExpenses() []finance.Expense {
	expenses := make([]finance.Expense, 0, len(r.Expenses))
	for _, expense := range r.Expenses {
		expenses = append(expenses, finance.Expense{
			Category: expense.Category,
			Amount:   value(expense.Amount),
		})
	}
	return expenses
}

// GetPlan returns the plan kind.
func (p *Path) GetPlan() string {
	return p.Plan
}

// GetYears returns the length of a college plan, defaulting to four years.
func (p *Path) GetYears() int {
	if p.Years == nil {
		return constants.DefaultCollegeYears
	}
	return *p.Years
}

// GetProjectedStartingSalary returns the annual starting salary.
func (p *Path) GetProjectedStartingSalary() float64 {
	return value(p.ProjectedStartingSalary)
}

// GetEstimatedLoanPayment returns the monthly student loan payment.
func (p *Path) GetEstimatedLoanPayment() float64 {
	return value(p.EstimatedLoanPayment)
}

// GetTotalDebt returns the debt accumulated over the plan.
func (p *Path) GetTotalDebt() float64 {
	return value(p.TotalDebt)
}
