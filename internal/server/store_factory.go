package server

import (
	"context"
	"log/slog"

	"pokedex-service/internal/config"
	"pokedex-service/internal/kvstore"
	"pokedex-service/internal/logging"
)

// openSQLite remains a var for tests to override.
var openSQLite = func(ctx context.Context, path string) (kvstore.Store, error) {
	store, err := kvstore.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// buildStore opens the SQLite store at Storage.Path. An empty path, or a store that
// cannot be opened, selects the in-memory store so the service still starts.
func buildStore(cfg config.Config, logger *slog.Logger) kvstore.Store {
	if cfg.Storage.Path == "" {
		logging.Info(logger, "using in-memory store")
		return kvstore.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()
	store, err := openSQLite(ctx, cfg.Storage.Path)
	if err != nil {
		logging.Warn(logger, "sqlite store unavailable, falling back to memory",
			slog.String("path", cfg.Storage.Path), "error", err)
		return kvstore.NewMemoryStore()
	}
	logging.Info(logger, "using sqlite store", slog.String("path", cfg.Storage.Path))
	return store
}
