package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore keeps users in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int
	documents  map[string]map[string]any
	byUsername map[string]string
	logger     *zap.Logger
}

// NewMemoryStore returns an empty store that numbers users "1", "2", ...
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		documents:  make(map[string]map[string]any),
		byUsername: make(map[string]string),
		logger:     logger,
	}
}

// CreateUser stores a new user and returns its id.
func (s *MemoryStore) CreateUser(_ context.Context, user User) (string, error) {
	user, err := prepareUser(user)
	if err != nil {
		return "", err
	}
	doc, err := toDocument(user)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return "", fmt.Errorf("%w: %s", ErrUserExists, user.Username)
	}
	s.nextID++
	id := strconv.Itoa(s.nextID)
	s.documents[id] = doc
	s.byUsername[user.Username] = id

	s.logger.Debug("created user",
		zap.String("op", "store.memory.CreateUser"),
		zap.String("id", id),
	)
	return id, nil
}

// GetUserByUsername looks a user up by username.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return fromDocument(id, s.documents[id])
}

// GetUserByID looks a user up by id.
func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return fromDocument(id, doc)
}

// UpdateUser applies the patch to a copy of the document and keeps the copy
// only when the whole patch succeeded.
func (s *MemoryStore) UpdateUser(_ context.Context, id string, update Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return ErrNotFound
	}
	patched, err := cloneDocument(doc)
	if err != nil {
		return fmt.Errorf("copy user %s: %w", id, err)
	}
	if err := ApplyUpdate(patched, update); err != nil {
		return err
	}
	s.documents[id] = patched

	s.logger.Debug("updated user",
		zap.String("op", "store.memory.UpdateUser"),
		zap.String("id", id),
		zap.Int("set", len(update.Set)),
		zap.Int("push", len(update.Push)),
	)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
