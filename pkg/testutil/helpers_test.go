package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/lifepath/internal/profile"
)

func TestFindExpense(t *testing.T) {
	expenses := []profile.Expense{
		{Category: "rent", Amount: profile.Float64(900)},
		{Category: "food", Amount: profile.Float64(300)},
		{Category: "rent", Amount: profile.Float64(50)},
	}

	tests := []struct {
		name           string
		category       string
		expectFound    bool
		expectedAmount float64
	}{
		{
			name:           "Find existing category",
			category:       "food",
			expectFound:    true,
			expectedAmount: 300,
		},
		{
			name:           "Duplicate category returns first",
			category:       "rent",
			expectFound:    true,
			expectedAmount: 900,
		},
		{
			name:        "Search for non-existent category",
			category:    "travel",
			expectFound: false,
		},
		{
			name:        "Empty category",
			category:    "",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindExpense(expenses, tt.category)

			if tt.expectFound {
				if result == nil {
					t.Fatalf("expected to find %q, got nil", tt.category)
				}
				if *result.Amount != tt.expectedAmount {
					t.Errorf("expected amount %v, got %v", tt.expectedAmount, *result.Amount)
				}
			} else if result != nil {
				t.Errorf("expected nil for %q, got %+v", tt.category, result)
			}
		})
	}
}

func TestFindExpenseReturnsPointerIntoSlice(t *testing.T) {
	expenses := []profile.Expense{{Category: "gym", Amount: profile.Float64(45)}}

	result := FindExpense(expenses, "gym")
	result.Category = "fitness"

	if expenses[0].Category != "fitness" {
		t.Errorf("expected pointer into the original slice")
	}
}

func TestFindExpenseNilSlice(t *testing.T) {
	if result := FindExpense(nil, "rent"); result != nil {
		t.Errorf("expected nil for nil slice, got %+v", result)
	}
}

type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...interface{}) {
	r.failed = true
}

func TestAssertClose(t *testing.T) {
	tests := []struct {
		name       string
		got, want  float64
		tolerance  float64
		expectFail bool
	}{
		{"Exact", 1.5, 1.5, 0, false},
		{"Within tolerance", 100.004, 100, 0.01, false},
		{"Outside tolerance", 100.02, 100, 0.01, true},
		{"Matching infinity", math.Inf(1), math.Inf(1), 0.01, false},
		{"Opposite infinity", math.Inf(-1), math.Inf(1), 0.01, true},
		{"NaN", math.NaN(), 0, 0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingTB{TB: t}
			AssertClose(rec, "value", tt.got, tt.want, tt.tolerance)
			if rec.failed != tt.expectFail {
				t.Errorf("AssertClose(%v, %v) failed = %v, expected %v", tt.got, tt.want, rec.failed, tt.expectFail)
			}
		})
	}
}

func TestAssertCurrency(t *testing.T) {
	rec := &recordingTB{TB: t}
	AssertCurrency(rec, "payment", 212.13, 212.125)
	if rec.failed {
		t.Errorf("expected half a cent difference to pass")
	}

	rec = &recordingTB{TB: t}
	AssertCurrency(rec, "payment", 212.15, 212.13)
	if !rec.failed {
		t.Errorf("expected two cent difference to fail")
	}
}
