package config

// StorageConfig locates the persisted key-value store and index snapshots.
// An empty Path selects the in-memory store.
type StorageConfig struct {
	Path        string
	SnapshotDir string
}

func loadStorage() StorageConfig {
	return StorageConfig{
		Path:        stringEnvAllowEmpty(envStoragePath, defaultStoragePath),
		SnapshotDir: stringEnvAllowEmpty(envSnapshotDir, defaultSnapshotDir),
	}
}
