package fixture

import (
	"context"
	"fmt"
	"strings"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
)

const (
	pokemonURL = "https://pokeapi.co/api/v2/pokemon/%d/"
	speciesURL = "https://pokeapi.co/api/v2/pokemon-species/%d/"
	chainURL   = "https://pokeapi.co/api/v2/evolution-chain/%d/"
)

// Provider serves a small deterministic catalog useful for local testing and offline bootstrapping.
type Provider struct {
	byID map[int]entry
}

// New creates a fixture provider.
func New() *Provider {
	byID := make(map[int]entry, len(entries))
	for _, e := range entries {
		byID[e.id] = e
	}
	return &Provider{byID: byID}
}

// FetchIndex returns the fixture refs in id order.
func (p *Provider) FetchIndex(ctx context.Context, limit int) ([]pokemon.EntityRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	refs := make([]pokemon.EntityRef, 0, len(entries))
	for _, e := range entries {
		if limit > 0 && len(refs) == limit {
			break
		}
		refs = append(refs, ref(e))
	}
	return refs, nil
}

// FetchByType returns the refs tagged with category.
func (p *Provider) FetchByType(ctx context.Context, category string) ([]pokemon.EntityRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if _, ok := doubleDamageFrom[category]; !ok {
		return nil, &domain.NotFoundError{Resource: "type", Key: category}
	}
	refs := make([]pokemon.EntityRef, 0)
	for _, e := range entries {
		for _, t := range e.types {
			if t == category {
				refs = append(refs, ref(e))
				break
			}
		}
	}
	return refs, nil
}

func (p *Provider) FetchPokemon(ctx context.Context, r pokemon.EntityRef) (pokemon.EntityRecord, error) {
	if id := r.ID(); id > 0 {
		return p.FetchPokemonByID(ctx, id)
	}
	for _, e := range entries {
		if e.name == strings.ToLower(r.Name) {
			return p.FetchPokemonByID(ctx, e.id)
		}
	}
	return pokemon.EntityRecord{}, &domain.NotFoundError{Resource: "pokemon", Key: r.Name}
}

func (p *Provider) FetchPokemonByID(ctx context.Context, id int) (pokemon.EntityRecord, error) {
	if err := ctx.Err(); err != nil {
		return pokemon.EntityRecord{}, err
	}
	e, ok := p.byID[id]
	if !ok {
		return pokemon.EntityRecord{}, &domain.NotFoundError{Resource: "pokemon", Key: fmt.Sprint(id)}
	}
	stats := make([]pokemon.Stat, len(statNames))
	for i, name := range statNames {
		stats[i] = pokemon.Stat{Name: name, Value: e.stats[i]}
	}
	return pokemon.EntityRecord{
		ID:         e.id,
		Name:       e.name,
		Types:      append([]string(nil), e.types...),
		Stats:      stats,
		Sprites:    pokemon.Sprites{Artwork: fmt.Sprintf(pokemon.ArtworkURLTemplate, e.id)},
		SpeciesURL: fmt.Sprintf(speciesURL, e.id),
	}, nil
}

func (p *Provider) FetchSpecies(ctx context.Context, url string) (pokemon.Species, error) {
	if err := ctx.Err(); err != nil {
		return pokemon.Species{}, err
	}
	id, err := pokemon.IDFromURL(url)
	e, ok := p.byID[id]
	if err != nil || !ok {
		return pokemon.Species{}, &domain.NotFoundError{Resource: "species", Key: url}
	}
	texts := make([]pokemon.FlavorText, 0, len(e.flavor))
	for _, lang := range []string{"en", "es"} {
		if text, ok := e.flavor[lang]; ok {
			texts = append(texts, pokemon.FlavorText{Language: lang, Text: text})
		}
	}
	return pokemon.Species{
		Name:              e.name,
		FlavorTexts:       texts,
		EvolutionChainURL: fmt.Sprintf(chainURL, e.chainID),
	}, nil
}

func (p *Provider) FetchEvolutionChain(ctx context.Context, url string) ([]pokemon.EvolutionStage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := pokemon.IDFromURL(url)
	chain, ok := chains[id]
	if err != nil || !ok {
		return nil, &domain.NotFoundError{Resource: "evolution chain", Key: url}
	}
	stages := make([]pokemon.EvolutionStage, len(chain))
	for i, s := range chain {
		stages[i] = pokemon.EvolutionStage{ID: s.id, Name: s.name, Image: fmt.Sprintf(pokemon.ArtworkURLTemplate, s.id)}
	}
	return stages, nil
}

func (p *Provider) FetchTypeDetail(ctx context.Context, name string) (pokemon.TypeDetail, error) {
	if err := ctx.Err(); err != nil {
		return pokemon.TypeDetail{}, err
	}
	from, ok := doubleDamageFrom[name]
	if !ok {
		return pokemon.TypeDetail{}, &domain.NotFoundError{Resource: "type", Key: name}
	}
	return pokemon.TypeDetail{Name: name, DoubleDamageFrom: append([]string(nil), from...)}, nil
}

func ref(e entry) pokemon.EntityRef {
	return pokemon.EntityRef{Name: e.name, URL: fmt.Sprintf(pokemonURL, e.id)}
}
