package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"pokedex-service/internal/domain/pokemon"
)

// Store defines how snapshots are loaded.
type Store interface {
	LoadIndex() ([]pokemon.EntityRef, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadIndex reads {basePath}/index.json. A missing file surfaces as os.ErrNotExist.
func (s *FSStore) LoadIndex() ([]pokemon.EntityRef, error) {
	if s == nil || s.basePath == "" {
		return nil, errors.New("snapshot store not configured")
	}
	var payload IndexSnapshot
	if err := decodeFile(IndexSnapshotPath(s.basePath), &payload); err != nil {
		return nil, err
	}
	if len(payload.Refs) == 0 {
		return nil, errors.New("index snapshot is empty")
	}
	return payload.Refs, nil
}

// HasIndex reports whether an index snapshot exists.
func (s *FSStore) HasIndex() bool {
	if s == nil || s.basePath == "" {
		return false
	}
	_, err := os.Stat(IndexSnapshotPath(s.basePath))
	return err == nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
