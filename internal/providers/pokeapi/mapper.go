package pokeapi

import (
	"fmt"

	"pokedex-service/internal/domain/pokemon"
)

func mapRefs(in []namedResource) []pokemon.EntityRef {
	out := make([]pokemon.EntityRef, 0, len(in))
	for _, r := range in {
		out = append(out, pokemon.EntityRef{Name: r.Name, URL: r.URL})
	}
	return out
}

// mapTypeMembers unwraps the nested {pokemon:{name,url}} entries of the type endpoint.
func mapTypeMembers(in []typeMember) []pokemon.EntityRef {
	out := make([]pokemon.EntityRef, 0, len(in))
	for _, m := range in {
		out = append(out, pokemon.EntityRef{Name: m.Pokemon.Name, URL: m.Pokemon.URL})
	}
	return out
}

func mapPokemon(p pokemonResponse) pokemon.EntityRecord {
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}
	stats := make([]pokemon.Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, pokemon.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return pokemon.EntityRecord{
		ID:    p.ID,
		Name:  p.Name,
		Types: types,
		Stats: stats,
		Sprites: pokemon.Sprites{
			Front:   p.Sprites.FrontDefault,
			Artwork: p.Sprites.Other.OfficialArtwork.FrontDefault,
		},
		SpeciesURL: p.Species.URL,
	}
}

func mapSpecies(s speciesResponse) pokemon.Species {
	texts := make([]pokemon.FlavorText, 0, len(s.FlavorTextEntries))
	for _, e := range s.FlavorTextEntries {
		texts = append(texts, pokemon.FlavorText{Language: e.Language.Name, Text: e.FlavorText})
	}
	return pokemon.Species{
		Name:              s.Name,
		FlavorTexts:       texts,
		EvolutionChainURL: s.EvolutionChain.URL,
	}
}

// mapEvolution walks the chain following the first branch at every step.
func mapEvolution(c evolutionChainResponse) []pokemon.EvolutionStage {
	var stages []pokemon.EvolutionStage
	link := &c.Chain
	for link != nil && link.Species.Name != "" {
		id, _ := pokemon.IDFromURL(link.Species.URL)
		stage := pokemon.EvolutionStage{ID: id, Name: link.Species.Name}
		if id > 0 {
			stage.Image = fmt.Sprintf(pokemon.ArtworkURLTemplate, id)
		}
		stages = append(stages, stage)
		if len(link.EvolvesTo) == 0 {
			break
		}
		link = &link.EvolvesTo[0]
	}
	return stages
}

func mapTypeDetail(t typeResponse) pokemon.TypeDetail {
	from := make([]string, 0, len(t.DamageRelations.DoubleDamageFrom))
	for _, r := range t.DamageRelations.DoubleDamageFrom {
		from = append(from, r.Name)
	}
	return pokemon.TypeDetail{Name: t.Name, DoubleDamageFrom: from}
}
