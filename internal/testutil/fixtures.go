package testutil

import (
	"fmt"

	"pokedex-service/internal/domain/pokemon"
)

const refURLTemplate = "https://pokeapi.co/api/v2/pokemon/%d/"

// SampleRef returns an index reference for the given id.
func SampleRef(id int) pokemon.EntityRef {
	return pokemon.EntityRef{Name: fmt.Sprintf("mon-%d", id), URL: fmt.Sprintf(refURLTemplate, id)}
}

// NamedRef returns an index reference with an explicit name.
func NamedRef(id int, name string) pokemon.EntityRef {
	return pokemon.EntityRef{Name: name, URL: fmt.Sprintf(refURLTemplate, id)}
}

// SampleRecord returns a hydrated record matching ref.
func SampleRecord(ref pokemon.EntityRef) pokemon.EntityRecord {
	id := ref.ID()
	return pokemon.EntityRecord{
		ID:    id,
		Name:  ref.Name,
		Types: []string{"normal"},
		Stats: []pokemon.Stat{
			{Name: "hp", Value: 50},
			{Name: "attack", Value: 50},
			{Name: "special-defense", Value: 50},
		},
		Sprites: pokemon.Sprites{Artwork: fmt.Sprintf(pokemon.ArtworkURLTemplate, id)},
	}
}

// SampleIndex returns refs for ids 1..n.
func SampleIndex(n int) []pokemon.EntityRef {
	refs := make([]pokemon.EntityRef, n)
	for i := range refs {
		refs[i] = SampleRef(i + 1)
	}
	return refs
}

// NewStubCatalog builds a StubProvider whose index and records cover refs.
func NewStubCatalog(refs []pokemon.EntityRef) *StubProvider {
	records := make(map[int]pokemon.EntityRecord, len(refs))
	for _, ref := range refs {
		records[ref.ID()] = SampleRecord(ref)
	}
	return &StubProvider{
		Index:   append([]pokemon.EntityRef(nil), refs...),
		ByType:  make(map[string][]pokemon.EntityRef),
		Records: records,
	}
}
