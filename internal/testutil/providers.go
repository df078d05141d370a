package testutil

import (
	"context"
	"fmt"
	"sync"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
)

// Stub operation names passed to StubProvider.Hook and counted by Calls.
const (
	OpIndex     = "index"
	OpByType    = "type"
	OpPokemon   = "pokemon"
	OpSpecies   = "species"
	OpEvolution = "evolution"
	OpTypeInfo  = "type_detail"
)

// StubProvider is an in-memory test double for providers.DataProvider.
// Records are looked up by id; a missing id yields a NotFoundError.
type StubProvider struct {
	Index   []pokemon.EntityRef
	ByType  map[string][]pokemon.EntityRef
	Records map[int]pokemon.EntityRecord
	Species map[string]pokemon.Species
	Chains  map[string][]pokemon.EvolutionStage
	Types   map[string]pokemon.TypeDetail

	// Err, when set, fails every call.
	Err error
	// Hook runs before every call with the operation name and its key; a non-nil
	// return fails the call. Tests use it to block, fail or count specific fetches.
	Hook func(ctx context.Context, op, key string) error

	mu    sync.Mutex
	calls map[string]int
}

// Calls returns how many times op was invoked.
func (s *StubProvider) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *StubProvider) enter(ctx context.Context, op, key string) error {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[op]++
	hook := s.Hook
	s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if hook != nil {
		return hook(ctx, op, key)
	}
	return nil
}

func (s *StubProvider) FetchIndex(ctx context.Context, limit int) ([]pokemon.EntityRef, error) {
	if err := s.enter(ctx, OpIndex, fmt.Sprint(limit)); err != nil {
		return nil, err
	}
	refs := s.Index
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	return append([]pokemon.EntityRef(nil), refs...), nil
}

func (s *StubProvider) FetchByType(ctx context.Context, category string) ([]pokemon.EntityRef, error) {
	if err := s.enter(ctx, OpByType, category); err != nil {
		return nil, err
	}
	return append([]pokemon.EntityRef{}, s.ByType[category]...), nil
}

func (s *StubProvider) FetchPokemon(ctx context.Context, ref pokemon.EntityRef) (pokemon.EntityRecord, error) {
	return s.FetchPokemonByID(ctx, ref.ID())
}

func (s *StubProvider) FetchPokemonByID(ctx context.Context, id int) (pokemon.EntityRecord, error) {
	if err := s.enter(ctx, OpPokemon, fmt.Sprint(id)); err != nil {
		return pokemon.EntityRecord{}, err
	}
	rec, ok := s.Records[id]
	if !ok {
		return pokemon.EntityRecord{}, &domain.NotFoundError{Resource: "pokemon", Key: fmt.Sprint(id)}
	}
	return rec, nil
}

func (s *StubProvider) FetchSpecies(ctx context.Context, url string) (pokemon.Species, error) {
	if err := s.enter(ctx, OpSpecies, url); err != nil {
		return pokemon.Species{}, err
	}
	sp, ok := s.Species[url]
	if !ok {
		return pokemon.Species{}, &domain.NotFoundError{Resource: "species", Key: url}
	}
	return sp, nil
}

func (s *StubProvider) FetchEvolutionChain(ctx context.Context, url string) ([]pokemon.EvolutionStage, error) {
	if err := s.enter(ctx, OpEvolution, url); err != nil {
		return nil, err
	}
	chain, ok := s.Chains[url]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "evolution chain", Key: url}
	}
	return chain, nil
}

func (s *StubProvider) FetchTypeDetail(ctx context.Context, name string) (pokemon.TypeDetail, error) {
	if err := s.enter(ctx, OpTypeInfo, name); err != nil {
		return pokemon.TypeDetail{}, err
	}
	detail, ok := s.Types[name]
	if !ok {
		return pokemon.TypeDetail{}, &domain.NotFoundError{Resource: "type", Key: name}
	}
	return detail, nil
}
