package store

import (
	"context"
	"fmt"

	"github.com/iwvelando/lifepath/internal/config"
	"github.com/iwvelando/lifepath/pkg/constants"
	"go.uber.org/zap"
)

// Open builds the backend named in the configuration. When a persistent
// backend cannot be opened and fallback is enabled, an in-memory store is
// returned instead.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s, err := open(ctx, cfg, logger)
	if err == nil {
		return s, nil
	}
	if !cfg.FallbackToMemory {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	logger.Warn("store unavailable, falling back to memory",
		zap.String("op", "store.Open"),
		zap.String("backend", cfg.Backend),
		zap.Error(err),
	)
	return NewMemoryStore(logger), nil
}

func open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", constants.StoreBackendMemory:
		return NewMemoryStore(logger), nil
	case constants.StoreBackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = constants.DefaultSQLitePath
		}
		return OpenSQLite(path, logger)
	case constants.StoreBackendNeo4j:
		client, err := NewNeo4jClient(ctx, cfg.Neo4j)
		if err != nil {
			return nil, err
		}
		s, err := NewNeo4jStore(ctx, client, logger)
		if err != nil {
			_ = client.Close(ctx)
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
