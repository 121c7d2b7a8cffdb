package profile

import (
	"fmt"
	"strings"

	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/loans"
	"github.com/iwvelando/lifepath/pkg/validation"
)

// LoanTerms are the rate and term used to estimate student loan payments.
type LoanTerms struct {
	AnnualRate float64
	TermYears  int
}

// DefaultLoanTerms returns the standard student loan terms.
func DefaultLoanTerms() LoanTerms {
	return LoanTerms{
		AnnualRate: constants.DefaultLoanAnnualRate,
		TermYears:  constants.DefaultLoanTermYears,
	}
}

// DreamForm is the submitted dream budget. City, housing and transportation
// are required; the remaining categories default to zero.
type DreamForm struct {
	TargetCity         *string  `json:"target_city"`
	HousingCost        *float64 `json:"housing_cost"`
	TransportationCost *float64 `json:"transportation_cost"`
	FoodCost           *float64 `json:"food_cost"`
	EntertainmentCost  *float64 `json:"entertainment_cost"`
	OtherCost          *float64 `json:"other_cost"`
}

// Build validates the form and returns the dream with its annual cost derived.
func (f DreamForm) Build() (*Dream, error) {
	if f.TargetCity == nil || strings.TrimSpace(*f.TargetCity) == "" {
		return nil, fmt.Errorf("target_city is required")
	}
	if err := validation.RequireAmount("housing_cost", f.HousingCost); err != nil {
		return nil, err
	}
	if err := validation.RequireAmount("transportation_cost", f.TransportationCost); err != nil {
		return nil, err
	}

	optional := []struct {
		name   string
		amount *float64
	}{
		{"food_cost", f.FoodCost},
		{"entertainment_cost", f.EntertainmentCost},
		{"other_cost", f.OtherCost},
	}
	for _, field := range optional {
		if field.amount == nil {
			continue
		}
		if err := validation.ValidateAmount(field.name, *field.amount); err != nil {
			return nil, err
		}
	}

	dream := &Dream{
		TargetCity:         strings.TrimSpace(*f.TargetCity),
		HousingCost:        Float64(*f.HousingCost),
		TransportationCost: Float64(*f.TransportationCost),
		FoodCost:           Float64(value(f.FoodCost)),
		EntertainmentCost:  Float64(value(f.EntertainmentCost)),
		OtherCost:          Float64(value(f.OtherCost)),
	}
	dream.Derive()
	return dream, nil
}

// RealityForm is the submitted income and expense snapshot.
type RealityForm struct {
	MonthlyIncome *float64  `json:"monthly_income"`
	Expenses      []Expense `json:"expenses"`
}

// Build validates the form. Expense rows without a category or an amount are
// dropped, matching a partially filled expense table.
func (f RealityForm) Build() (*Reality, error) {
	if err := validation.RequireAmount("monthly_income", f.MonthlyIncome); err != nil {
		return nil, err
	}

	reality := &Reality{
		MonthlyIncome: Float64(*f.MonthlyIncome),
		Expenses:      []Expense{},
	}
	for _, expense := range f.Expenses {
		if strings.TrimSpace(expense.Category) == "" || expense.Amount == nil {
			continue
		}
		if err := validation.ValidateAmount("expense amount", *expense.Amount); err != nil {
			return nil, err
		}
		reality.Expenses = append(reality.Expenses, Expense{
			Category: expense.Category,
			Amount:   Float64(*expense.Amount),
		})
	}
	return reality, nil
}

// ExpenseForm is a single expense added after onboarding.
type ExpenseForm struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
}

// Build validates the expense.
func (f ExpenseForm) Build() (Expense, error) {
	if err := validation.RequireAmount("amount", f.Amount); err != nil {
		return Expense{}, err
	}
	return Expense{Category: f.Category, Amount: Float64(*f.Amount)}, nil
}

// PathForm is the submitted path plan.
type PathForm struct {
	Plan                    string   `json:"plan"`
	CollegeName             *string  `json:"college_name"`
	AnnualTuition           *float64 `json:"annual_tuition"`
	FinancialAid            *float64 `json:"financial_aid"`
	Years                   *int     `json:"years"`
	ProjectedStartingSalary *float64 `json:"projected_starting_salary"`
}

// Build validates the form and, for a college plan, derives the total debt
// and the monthly payment of a loan covering it.
func (f PathForm) Build(terms LoanTerms) (*Path, error) {
	if err := validation.ValidatePlan(f.Plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPlan, err)
	}
	if err := validation.RequireAmount("projected_starting_salary", f.ProjectedStartingSalary); err != nil {
		return nil, err
	}

	if f.Plan == constants.PlanWorkforce {
		return &Path{
			Plan:                    constants.PlanWorkforce,
			ProjectedStartingSalary: Float64(*f.ProjectedStartingSalary),
		}, nil
	}

	if f.CollegeName == nil || strings.TrimSpace(*f.CollegeName) == "" {
		return nil, fmt.Errorf("college_name is required")
	}
	if err := validation.RequireAmount("annual_tuition", f.AnnualTuition); err != nil {
		return nil, err
	}
	aid := value(f.FinancialAid)
	if err := validation.ValidateAmount("financial_aid", aid); err != nil {
		return nil, err
	}
	years := constants.DefaultCollegeYears
	if f.Years != nil {
		years = *f.Years
	}
	if err := validation.ValidateYears("years", years); err != nil {
		return nil, err
	}

	totalDebt := loans.TotalDebt(*f.AnnualTuition, aid, years)
	payment := loans.MonthlyPayment(totalDebt, terms.AnnualRate, terms.TermYears)

	return &Path{
		Plan:                    constants.PlanCollege,
		CollegeName:             strings.TrimSpace(*f.CollegeName),
		AnnualTuition:           Float64(*f.AnnualTuition),
		FinancialAid:            Float64(aid),
		Years:                   Int(years),
		TotalDebt:               Float64(totalDebt),
		EstimatedLoanPayment:    Float64(payment),
		ProjectedStartingSalary: Float64(*f.ProjectedStartingSalary),
	}, nil
}
