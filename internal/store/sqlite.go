package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore keeps one row per user with the document serialized as JSON.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite opens or creates the user database at the given path.
func OpenSQLite(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	// Read-modify-write transactions must not interleave.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("opened sqlite store",
		zap.String("op", "store.sqlite.Open"),
		zap.String("path", dbPath),
	)
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user with a random id.
func (s *SQLiteStore) CreateUser(ctx context.Context, user User) (string, error) {
	user, err := prepareUser(user)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", user.Username).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", fmt.Errorf("%w: %s", ErrUserExists, user.Username)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (id, username, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, user.Username, string(data), user.CreatedAt.UTC().Format(time.RFC3339), now,
	)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	s.logger.Debug("created user",
		zap.String("op", "store.sqlite.CreateUser"),
		zap.String("id", id),
	)
	return id, nil
}

// GetUserByUsername looks a user up by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.getUser(ctx, "SELECT id, document FROM users WHERE username = ?", username)
}

// GetUserByID looks a user up by id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.getUser(ctx, "SELECT id, document FROM users WHERE id = ?", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, query string, arg string) (*User, error) {
	var id, document string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&id, &document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(id, []byte(document))
}

// UpdateUser applies the patch inside a transaction.
func (s *SQLiteStore) UpdateUser(ctx context.Context, id string, update Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var document string
	err = tx.QueryRowContext(ctx, "SELECT document FROM users WHERE id = ?", id).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return fmt.Errorf("decode user %s: %w", id, err)
	}
	if err := ApplyUpdate(doc, update); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", id, err)
	}

	_, err = tx.ExecContext(ctx, "UPDATE users SET document = ?, updated_at = ? WHERE id = ?",
		string(data), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Debug("updated user",
		zap.String("op", "store.sqlite.UpdateUser"),
		zap.String("id", id),
	)
	return nil
}
