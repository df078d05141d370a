package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

const manifestVersion = 1

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Index       IndexMeta `json:"index"`
}

// IndexMeta describes the stored index snapshot.
type IndexMeta struct {
	Count         int       `json:"count"`
	LastChanged   time.Time `json:"lastChanged"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     manifestVersion,
		GeneratedAt: time.Now().UTC(),
	}
}

// ReadManifest loads the manifest under basePath. A missing or unreadable manifest
// yields the default one alongside the error.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(ManifestPath(basePath))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.Version = manifestVersion
	m.GeneratedAt = now
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}
