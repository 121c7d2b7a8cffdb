package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		expectErr bool
	}{
		{"Zero", 0, false},
		{"Positive", 1500.25, false},
		{"Negative", -0.01, true},
		{"NaN", math.NaN(), true},
		{"Infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount("housing_cost", tt.amount)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateAmount(%v) expected error but got none", tt.amount)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateAmount(%v) unexpected error = %v", tt.amount, err)
			}
			if err != nil && !strings.Contains(err.Error(), "housing_cost") {
				t.Errorf("expected error to name the field, got %q", err.Error())
			}
		})
	}
}

func TestRequireAmount(t *testing.T) {
	if err := RequireAmount("monthly_income", nil); err == nil || !strings.Contains(err.Error(), "is required") {
		t.Errorf("expected required error, got %v", err)
	}
	amount := 4200.0
	if err := RequireAmount("monthly_income", &amount); err != nil {
		t.Errorf("unexpected error = %v", err)
	}
	negative := -1.0
	if err := RequireAmount("monthly_income", &negative); err == nil {
		t.Errorf("expected error for negative amount")
	}
}

func TestValidateYears(t *testing.T) {
	for _, years := range []int{1, 4, 10} {
		if err := ValidateYears("years", years); err != nil {
			t.Errorf("ValidateYears(%d) unexpected error = %v", years, err)
		}
	}
	for _, years := range []int{0, -1} {
		if err := ValidateYears("years", years); err == nil {
			t.Errorf("ValidateYears(%d) expected error but got none", years)
		}
	}
}

func TestValidateRate(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		expectErr bool
	}{
		{"Zero", 0, false},
		{"Five percent", 0.05, false},
		{"Negative", -0.01, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRate("annual_rate", tt.rate)
			if tt.expectErr != (err != nil) {
				t.Errorf("ValidateRate(%v) error = %v, expectErr %v", tt.rate, err, tt.expectErr)
			}
		})
	}
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		plan      string
		expectErr bool
	}{
		{"college", false},
		{"workforce", false},
		{"", true},
		{"military", true},
		{"College", true},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			err := ValidatePlan(tt.plan)
			if tt.expectErr != (err != nil) {
				t.Errorf("ValidatePlan(%q) error = %v, expectErr %v", tt.plan, err, tt.expectErr)
			}
		})
	}
}

func TestProfileValidatorValidateAll(t *testing.T) {
	tests := []struct {
		name             string
		validator        ProfileValidator
		expectedWarnings []string
	}{
		{
			name: "Healthy profile",
			validator: ProfileValidator{
				Dream:   DreamConfig{TargetCity: "Denver", AnnualDreamCost: 30000},
				Reality: RealityConfig{MonthlyIncome: 3000, MonthlyExpenses: 800},
				Path:    PathConfig{Plan: "college", AnnualTuition: 30000, FinancialAid: 10000, ProjectedStartingSalary: 60000},
			},
		},
		{
			name: "Free dream",
			validator: ProfileValidator{
				Dream:   DreamConfig{TargetCity: "Austin"},
				Reality: RealityConfig{MonthlyIncome: 3000},
				Path:    PathConfig{Plan: "workforce", ProjectedStartingSalary: 40000},
			},
			expectedWarnings: []string{"always be affordable"},
		},
		{
			name: "Expenses exceed income and no salary",
			validator: ProfileValidator{
				Dream:   DreamConfig{TargetCity: "Boston", AnnualDreamCost: 12000},
				Reality: RealityConfig{MonthlyIncome: 500, MonthlyExpenses: 800},
				Path:    PathConfig{Plan: "workforce"},
			},
			expectedWarnings: []string{"exceed current income", "no projected starting salary"},
		},
		{
			name: "Aid exceeds tuition",
			validator: ProfileValidator{
				Dream:   DreamConfig{TargetCity: "Seattle", AnnualDreamCost: 12000},
				Reality: RealityConfig{MonthlyIncome: 1000},
				Path:    PathConfig{Plan: "college", AnnualTuition: 10000, FinancialAid: 12000, ProjectedStartingSalary: 50000},
			},
			expectedWarnings: []string{"Financial aid exceeds annual tuition"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.validator.ValidateAll()
			if len(warnings) != len(tt.expectedWarnings) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.expectedWarnings), len(warnings), warnings)
			}
			for i, expected := range tt.expectedWarnings {
				if !strings.Contains(warnings[i], expected) {
					t.Errorf("warning %d = %q, expected it to contain %q", i, warnings[i], expected)
				}
			}
		})
	}
}
