package store

import (
	"context"
	"errors"
	"testing"

	"github.com/iwvelando/lifepath/internal/profile"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	id, err := s.CreateUser(ctx, User{Username: " alice ", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if id == "" {
		t.Fatal("CreateUser() returned empty id")
	}

	if _, err := s.CreateUser(ctx, User{Username: "alice", PasswordHash: "other"}); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, err := s.CreateUser(ctx, User{Username: "  "}); err == nil {
		t.Errorf("expected error for empty username")
	}

	byName, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if byName.ID != id || byName.PasswordHash != "hash" {
		t.Errorf("unexpected user %+v", byName)
	}
	if byName.CreatedAt.IsZero() {
		t.Errorf("expected created_at to be set")
	}
	if byName.Profile.Dream != nil {
		t.Errorf("expected empty profile for new user")
	}

	if _, err := s.GetUserByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown username, got %v", err)
	}
	if _, err := s.GetUserByID(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}

	updates := []Update{
		{Set: map[string]any{"profile.dream": &profile.Dream{
			TargetCity:      "Denver",
			HousingCost:     profile.Float64(1200),
			AnnualDreamCost: profile.Float64(14400),
		}}},
		{Set: map[string]any{"profile.reality": &profile.Reality{
			MonthlyIncome: profile.Float64(2500),
			Expenses:      []profile.Expense{},
		}}},
		{Push: map[string]any{"profile.reality.expenses": profile.Expense{Category: "rent", Amount: profile.Float64(800)}}},
		{Push: map[string]any{"profile.reality.expenses": profile.Expense{Category: "food", Amount: profile.Float64(300)}}},
	}
	for i, update := range updates {
		if err := s.UpdateUser(ctx, id, update); err != nil {
			t.Fatalf("UpdateUser() #%d error = %v", i, err)
		}
	}

	if err := s.UpdateUser(ctx, id, Update{Set: map[string]any{"profile.dream.target_city.name": "x"}}); err == nil {
		t.Errorf("expected error when patching through a scalar")
	}
	if err := s.UpdateUser(ctx, "does-not-exist", Update{Set: map[string]any{"a": 1}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound when updating unknown id, got %v", err)
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, expected alice", user.Username)
	}
	if user.Profile.Dream == nil || user.Profile.Dream.TargetCity != "Denver" {
		t.Fatalf("unexpected dream %+v", user.Profile.Dream)
	}
	if user.Profile.Dream.GetAnnualDreamCost() != 14400 {
		t.Errorf("annual dream cost = %v, expected 14400", user.Profile.Dream.GetAnnualDreamCost())
	}
	if user.Profile.Reality == nil || user.Profile.Reality.GetMonthlyIncome() != 2500 {
		t.Fatalf("unexpected reality %+v", user.Profile.Reality)
	}
	expenses := user.Profile.Reality.GetExpenses()
	if len(expenses) != 2 || expenses[0].Category != "rent" || expenses[0].Amount != 800 || expenses[1].Category != "food" {
		t.Errorf("unexpected expenses %+v", expenses)
	}
	if user.Profile.Path != nil {
		t.Errorf("expected path to remain unset")
	}

	second, err := s.CreateUser(ctx, User{Username: "bob"})
	if err != nil {
		t.Fatalf("CreateUser() second user error = %v", err)
	}
	if second == id {
		t.Errorf("expected distinct ids, both were %s", id)
	}
}
