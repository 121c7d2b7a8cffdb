// Package store persists users and their profiles. Three backends share one
// document model: a user is a JSON-shaped document and every change is a
// dotted-path patch applied with ApplyUpdate.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/lifepath/internal/profile"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrUserExists is returned when a username is already registered.
	ErrUserExists = errors.New("username already exists")
)

// User is a registered account and its onboarding profile.
type User struct {
	ID           string          `json:"-"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"password_hash"`
	Profile      profile.Profile `json:"profile"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Store is implemented by every user backend.
type Store interface {
	CreateUser(ctx context.Context, user User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, update Update) error
	Close() error
}

func prepareUser(user User) (User, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return user, fmt.Errorf("username is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return user, nil
}

func toDocument(user User) (map[string]any, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	return doc, nil
}

func fromDocument(id string, doc map[string]any) (*User, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode user document: %w", err)
	}
	return decodeUser(id, data)
}

func decodeUser(id string, data []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	user.ID = id
	return &user, nil
}
