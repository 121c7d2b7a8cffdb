package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/iwvelando/lifepath/internal/profile"
)

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(nil))
}

func TestMemoryStoreSequentialIDs(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	for i, name := range []string{"a", "b", "c"} {
		id, err := s.CreateUser(ctx, User{Username: name})
		if err != nil {
			t.Fatalf("CreateUser(%s) error = %v", name, err)
		}
		if expected := fmt.Sprintf("%d", i+1); id != expected {
			t.Errorf("CreateUser(%s) id = %s, expected %s", name, id, expected)
		}
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, User{Username: "alice"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	user.Profile.Dream = &profile.Dream{TargetCity: "Nowhere"}

	again, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if again.Profile.Dream != nil {
		t.Errorf("expected stored user to be unaffected by caller mutation")
	}
}

func TestMemoryStoreConcurrentPush(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, User{Username: "alice"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	const pushes = 50
	var wg sync.WaitGroup
	for i := 0; i < pushes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			expense := profile.Expense{Category: fmt.Sprintf("item-%d", i), Amount: profile.Float64(1)}
			if err := s.UpdateUser(ctx, id, Update{Push: map[string]any{"profile.reality.expenses": expense}}); err != nil {
				t.Errorf("UpdateUser() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got := len(user.Profile.Reality.Expenses); got != pushes {
		t.Errorf("expected %d expenses, got %d", pushes, got)
	}
}
