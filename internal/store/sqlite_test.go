package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iwvelando/lifepath/internal/profile"
)

func openTestSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	return s
}

func TestSQLiteStore(t *testing.T) {
	s := openTestSQLite(t, filepath.Join(t.TempDir(), "users.db"))
	defer func() { _ = s.Close() }()

	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "users.db")
	ctx := context.Background()

	s := openTestSQLite(t, path)
	id, err := s.CreateUser(ctx, User{Username: "alice", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	path1 := &profile.Path{Plan: "workforce", ProjectedStartingSalary: profile.Float64(42000)}
	if err := s.UpdateUser(ctx, id, Update{Set: map[string]any{"profile.path": path1}}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := openTestSQLite(t, path)
	defer func() { _ = reopened.Close() }()

	user, err := reopened.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if user.ID != id {
		t.Errorf("ID = %s, expected %s", user.ID, id)
	}
	if user.Profile.Path == nil || user.Profile.Path.GetProjectedStartingSalary() != 42000 {
		t.Errorf("unexpected path %+v", user.Profile.Path)
	}
}
