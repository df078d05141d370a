// Package identity is a named-profile gate: trainers register a display name and log in
// by naming a registered one. It holds no secrets and is not authentication.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/kvstore"
	"pokedex-service/internal/logging"
)

// Store keys.
const (
	RegistryKey = "pokedex_registered_users"
	CurrentKey  = "pokeUser"
)

// MinNameLength is the shortest accepted trainer name after trimming.
const MinNameLength = 3

// Gate keeps the registry and the current trainer in a kvstore.Store.
type Gate struct {
	store  kvstore.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewGate builds a Gate over store.
func NewGate(store kvstore.Store, logger *slog.Logger) *Gate {
	return &Gate{store: store, logger: logger}
}

// Register adds name to the registry. It does not log the trainer in.
func (g *Gate) Register(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinNameLength {
		return "", &domain.ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at least %d characters", MinNameLength),
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	registry, err := g.registry(ctx)
	if err != nil {
		return "", err
	}
	if slices.Contains(registry, name) {
		return "", &domain.ConflictError{Resource: "trainer", Key: name}
	}
	registry = append(registry, name)
	if err := kvstore.SetJSON(ctx, g.store, RegistryKey, registry); err != nil {
		return "", fmt.Errorf("save registry: %w", err)
	}
	logging.Info(g.logger, "trainer registered", logging.FieldTrainer, name)
	return name, nil
}

// Login makes name the current trainer when it is registered.
func (g *Gate) Login(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	g.mu.Lock()
	defer g.mu.Unlock()

	registry, err := g.registry(ctx)
	if err != nil {
		return "", err
	}
	if !slices.Contains(registry, name) {
		return "", &domain.NotFoundError{Resource: "trainer", Key: name}
	}
	if err := kvstore.SetJSON(ctx, g.store, CurrentKey, name); err != nil {
		return "", fmt.Errorf("save current trainer: %w", err)
	}
	logging.Info(g.logger, "trainer logged in", logging.FieldTrainer, name)
	return name, nil
}

// Logout clears the current trainer. Logging out with nobody logged in is a no-op.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Delete(ctx, CurrentKey); err != nil {
		return fmt.Errorf("clear current trainer: %w", err)
	}
	return nil
}

// Current returns the logged-in trainer, or ok=false when nobody is.
func (g *Gate) Current(ctx context.Context) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var name string
	ok, err := kvstore.GetJSON(ctx, g.store, CurrentKey, &name)
	if err != nil {
		return "", false, fmt.Errorf("load current trainer: %w", err)
	}
	if !ok || name == "" {
		return "", false, nil
	}
	return name, true, nil
}

// Registered lists every registered trainer in registration order.
func (g *Gate) Registered(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registry(ctx)
}

func (g *Gate) registry(ctx context.Context) ([]string, error) {
	registry := []string{}
	if _, err := kvstore.GetJSON(ctx, g.store, RegistryKey, &registry); err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return registry, nil
}
