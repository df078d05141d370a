package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pokedex-service/internal/domain/pokemon"
)

// IndexSnapshot is the on-disk form of the master index.
type IndexSnapshot struct {
	Count int                 `json:"count"`
	Refs  []pokemon.EntityRef `json:"refs"`
}

// Writer persists the index snapshot and its manifest.
type Writer struct {
	basePath string
	now      func() time.Time
	mu       sync.Mutex
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{
		basePath: basePath,
		now:      time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteIndexSnapshot stores refs at {base}/index.json through a temp file and rename.
// An unchanged index is not rewritten; only the manifest's refresh time moves.
func (w *Writer) WriteIndexSnapshot(refs []pokemon.EntityRef) error {
	if w == nil || w.basePath == "" {
		return errors.New("snapshot writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if refs == nil {
		refs = []pokemon.EntityRef{}
	}
	data, err := json.MarshalIndent(IndexSnapshot{Count: len(refs), Refs: refs}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.basePath, 0o755); err != nil {
		return err
	}

	now := w.now().UTC()
	m, _ := ReadManifest(w.basePath)
	target := IndexSnapshotPath(w.basePath)
	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		if err := writeAtomic(target, data); err != nil {
			return err
		}
		m.Index.LastChanged = now
	}
	m.Index.Count = len(refs)
	m.Index.LastRefreshed = now
	return writeManifest(w.basePath, m, now)
}

func writeAtomic(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
