package providers

import (
	"context"

	"pokedex-service/internal/domain/pokemon"
)

// IndexProvider lists lightweight entity references.
// FetchIndex returns the master index in one request; FetchByType returns the
// membership list of one type tag, already unwrapped to plain references.
type IndexProvider interface {
	FetchIndex(ctx context.Context, limit int) ([]pokemon.EntityRef, error)
	FetchByType(ctx context.Context, category string) ([]pokemon.EntityRef, error)
}

// RecordProvider hydrates references into full records.
type RecordProvider interface {
	FetchPokemon(ctx context.Context, ref pokemon.EntityRef) (pokemon.EntityRecord, error)
	FetchPokemonByID(ctx context.Context, id int) (pokemon.EntityRecord, error)
}

// DetailProvider fetches the secondary resources behind the details view.
type DetailProvider interface {
	FetchSpecies(ctx context.Context, url string) (pokemon.Species, error)
	FetchEvolutionChain(ctx context.Context, url string) ([]pokemon.EvolutionStage, error)
	FetchTypeDetail(ctx context.Context, name string) (pokemon.TypeDetail, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	IndexProvider
	RecordProvider
	DetailProvider
}
