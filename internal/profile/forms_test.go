package profile

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/lifepath/pkg/constants"
)

func stringPtr(s string) *string {
	return &s
}

func TestDreamFormBuild(t *testing.T) {
	form := DreamForm{
		TargetCity:         stringPtr("  Portland "),
		HousingCost:        Float64(1000),
		TransportationCost: Float64(200),
	}

	dream, err := form.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if dream.TargetCity != "Portland" {
		t.Errorf("TargetCity = %q, expected Portland", dream.TargetCity)
	}
	if dream.GetAnnualDreamCost() != 14400 {
		t.Errorf("annual dream cost = %v, expected 14400", dream.GetAnnualDreamCost())
	}
	if dream.FoodCost == nil || *dream.FoodCost != 0 {
		t.Errorf("expected food cost to default to zero")
	}
}

func TestDreamFormBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    DreamForm
		wantErr string
	}{
		{
			name:    "Missing city",
			form:    DreamForm{HousingCost: Float64(1), TransportationCost: Float64(1)},
			wantErr: "target_city is required",
		},
		{
			name:    "Missing housing",
			form:    DreamForm{TargetCity: stringPtr("Reno"), TransportationCost: Float64(1)},
			wantErr: "housing_cost is required",
		},
		{
			name:    "Negative food",
			form:    DreamForm{TargetCity: stringPtr("Reno"), HousingCost: Float64(1), TransportationCost: Float64(1), FoodCost: Float64(-5)},
			wantErr: "food_cost cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Build()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Build() error = %v, expected %q", err, tt.wantErr)
			}
		})
	}
}

func TestRealityFormBuildDropsIncompleteRows(t *testing.T) {
	form := RealityForm{
		MonthlyIncome: Float64(3200),
		Expenses: []Expense{
			{Category: "rent", Amount: Float64(900)},
			{Category: "", Amount: Float64(50)},
			{Category: "phone"},
			{Category: "streaming", Amount: Float64(0)},
		},
	}

	reality, err := form.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(reality.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %+v", reality.Expenses)
	}
	if reality.Expenses[0].Category != "rent" || reality.Expenses[1].Category != "streaming" {
		t.Errorf("unexpected expenses %+v", reality.Expenses)
	}
}

func TestRealityFormRequiresIncome(t *testing.T) {
	if _, err := (RealityForm{}).Build(); err == nil {
		t.Errorf("expected error for missing income")
	}
}

func TestExpenseFormBuild(t *testing.T) {
	expense, err := ExpenseForm{Category: "gym", Amount: Float64(45)}.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if expense.Category != "gym" || *expense.Amount != 45 {
		t.Errorf("unexpected expense %+v", expense)
	}
	if _, err := (ExpenseForm{Category: "gym"}).Build(); err == nil {
		t.Errorf("expected error for missing amount")
	}
}

func TestPathFormBuildCollege(t *testing.T) {
	form := PathForm{
		Plan:                    constants.PlanCollege,
		CollegeName:             stringPtr("State University"),
		AnnualTuition:           Float64(25000),
		FinancialAid:            Float64(5000),
		ProjectedStartingSalary: Float64(60000),
	}

	path, err := form.Build(DefaultLoanTerms())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if path.GetYears() != 4 {
		t.Errorf("Years = %d, expected default 4", path.GetYears())
	}
	if path.GetTotalDebt() != 80000 {
		t.Errorf("TotalDebt = %v, expected 80000", path.GetTotalDebt())
	}
	if math.Abs(path.GetEstimatedLoanPayment()-848.52) > 1e-9 {
		t.Errorf("EstimatedLoanPayment = %v, expected 848.52", path.GetEstimatedLoanPayment())
	}
}

func TestPathFormBuildCollegeFullAid(t *testing.T) {
	form := PathForm{
		Plan:                    constants.PlanCollege,
		CollegeName:             stringPtr("Community College"),
		AnnualTuition:           Float64(4000),
		FinancialAid:            Float64(6000),
		Years:                   Int(2),
		ProjectedStartingSalary: Float64(40000),
	}

	path, err := form.Build(DefaultLoanTerms())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if path.GetTotalDebt() != -4000 {
		t.Errorf("TotalDebt = %v, expected -4000", path.GetTotalDebt())
	}
	if path.GetEstimatedLoanPayment() != 0 {
		t.Errorf("EstimatedLoanPayment = %v, expected 0", path.GetEstimatedLoanPayment())
	}
}

func TestPathFormBuildWorkforce(t *testing.T) {
	form := PathForm{
		Plan:                    constants.PlanWorkforce,
		AnnualTuition:           Float64(99999),
		ProjectedStartingSalary: Float64(42000),
	}

	path, err := form.Build(DefaultLoanTerms())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if path.AnnualTuition != nil || path.EstimatedLoanPayment != nil {
		t.Errorf("expected workforce path to carry no college fields, got %+v", path)
	}
	if path.GetProjectedStartingSalary() != 42000 {
		t.Errorf("salary = %v, expected 42000", path.GetProjectedStartingSalary())
	}
}

func TestPathFormBuildErrors(t *testing.T) {
	_, err := PathForm{Plan: "gap-year", ProjectedStartingSalary: Float64(1)}.Build(DefaultLoanTerms())
	if !errors.Is(err, ErrUnknownPlan) {
		t.Errorf("expected ErrUnknownPlan, got %v", err)
	}

	_, err = PathForm{
		Plan:                    constants.PlanCollege,
		CollegeName:             stringPtr("Tech"),
		AnnualTuition:           Float64(10000),
		Years:                   Int(0),
		ProjectedStartingSalary: Float64(1),
	}.Build(DefaultLoanTerms())
	if err == nil || !strings.Contains(err.Error(), "years must be greater than zero") {
		t.Errorf("expected years error, got %v", err)
	}

	_, err = PathForm{
		Plan:                    constants.PlanCollege,
		AnnualTuition:           Float64(10000),
		ProjectedStartingSalary: Float64(1),
	}.Build(DefaultLoanTerms())
	if err == nil || !strings.Contains(err.Error(), "college_name is required") {
		t.Errorf("expected college name error, got %v", err)
	}
}

func TestPathFormBuildCustomTerms(t *testing.T) {
	form := PathForm{
		Plan:                    constants.PlanCollege,
		CollegeName:             stringPtr("Institute"),
		AnnualTuition:           Float64(12000),
		Years:                   Int(1),
		ProjectedStartingSalary: Float64(50000),
	}

	path, err := form.Build(LoanTerms{AnnualRate: 0, TermYears: 10})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if path.GetEstimatedLoanPayment() != 100 {
		t.Errorf("EstimatedLoanPayment = %v, expected 100", path.GetEstimatedLoanPayment())
	}
}
