package server

import (
	"pokedex-service/internal/config"
	"pokedex-service/internal/poller"
	"pokedex-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer poller.SnapshotWriter
}

// buildSnapshots returns empty components when no snapshot directory is configured.
func buildSnapshots(cfg config.Config) snapshotComponents {
	basePath := cfg.Storage.SnapshotDir
	if basePath == "" {
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(basePath),
		writer: snapshots.NewWriter(basePath),
	}
}
