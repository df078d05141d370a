// Package kvstore persists small JSON documents under string keys, the way the
// browser build kept trainer state in local storage.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is a string-keyed blob store. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the value under key into dest. It reports false, leaving dest untouched, when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("kvstore: decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
