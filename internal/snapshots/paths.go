package snapshots

import "path/filepath"

const (
	indexFile    = "index.json"
	manifestFile = "manifest.json"
)

// IndexSnapshotPath builds the path to the master index snapshot.
func IndexSnapshotPath(basePath string) string {
	return filepath.Join(basePath, indexFile)
}

// ManifestPath builds the path to the snapshot manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
