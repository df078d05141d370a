// Package team manages each trainer's roster of at most MaxSize records.
package team

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/kvstore"
	"pokedex-service/internal/logging"
)

// MaxSize bounds a team.
const MaxSize = 6

const keyPrefix = "team_"

// Key returns the store key holding trainer's team.
func Key(trainer string) string {
	return keyPrefix + trainer
}

// toggle removes record when a member with the same id is present, appends it when the
// team has room, and otherwise reports a CapacityError with members unchanged.
func toggle(members []pokemon.EntityRecord, record pokemon.EntityRecord) ([]pokemon.EntityRecord, bool, error) {
	for _, m := range members {
		if m.ID == record.ID {
			return remove(members, record.ID), false, nil
		}
	}
	if len(members) >= MaxSize {
		return members, false, &domain.CapacityError{Limit: MaxSize}
	}
	out := make([]pokemon.EntityRecord, 0, len(members)+1)
	out = append(out, members...)
	return append(out, record), true, nil
}

// remove drops the member with id. Absent ids leave the team as is.
func remove(members []pokemon.EntityRecord, id int) []pokemon.EntityRecord {
	out := make([]pokemon.EntityRecord, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

// Manager persists teams in a kvstore.Store.
type Manager struct {
	store  kvstore.Store
	logger *slog.Logger

	// mu serializes read-modify-write cycles so concurrent toggles cannot exceed MaxSize.
	mu sync.Mutex
}

// NewManager builds a Manager over store.
func NewManager(store kvstore.Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Team returns trainer's members in insertion order. A trainer with no saved team has an empty one.
func (m *Manager) Team(ctx context.Context, trainer string) ([]pokemon.EntityRecord, error) {
	if err := checkTrainer(trainer); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, trainer)
}

// Toggle adds record to trainer's team or removes it when already a member.
// It reports whether the record is a member afterwards.
func (m *Manager) Toggle(ctx context.Context, trainer string, record pokemon.EntityRecord) ([]pokemon.EntityRecord, bool, error) {
	if err := checkTrainer(trainer); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	members, err := m.load(ctx, trainer)
	if err != nil {
		return nil, false, err
	}
	next, added, err := toggle(members, record)
	if err != nil {
		logging.Info(m.logger, "team full",
			logging.FieldTrainer, trainer,
			logging.FieldPokemonID, record.ID,
		)
		return members, false, err
	}
	if err := m.save(ctx, trainer, next); err != nil {
		return members, false, err
	}
	logging.Debug(m.logger, "team updated",
		logging.FieldTrainer, trainer,
		logging.FieldPokemonID, record.ID,
		"added", added,
		logging.FieldCount, len(next),
	)
	return next, added, nil
}

// Remove drops id from trainer's team.
func (m *Manager) Remove(ctx context.Context, trainer string, id int) ([]pokemon.EntityRecord, error) {
	if err := checkTrainer(trainer); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	members, err := m.load(ctx, trainer)
	if err != nil {
		return nil, err
	}
	next := remove(members, id)
	if len(next) == len(members) {
		return members, nil
	}
	if err := m.save(ctx, trainer, next); err != nil {
		return members, err
	}
	return next, nil
}

func (m *Manager) load(ctx context.Context, trainer string) ([]pokemon.EntityRecord, error) {
	members := []pokemon.EntityRecord{}
	if _, err := kvstore.GetJSON(ctx, m.store, Key(trainer), &members); err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}
	return members, nil
}

func (m *Manager) save(ctx context.Context, trainer string, members []pokemon.EntityRecord) error {
	if err := kvstore.SetJSON(ctx, m.store, Key(trainer), members); err != nil {
		return fmt.Errorf("save team: %w", err)
	}
	return nil
}

func checkTrainer(trainer string) error {
	if strings.TrimSpace(trainer) == "" {
		return &domain.ValidationError{Field: "trainer", Reason: "required"}
	}
	return nil
}
