package pokeapi

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type indexResponse struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

type pokemonResponse struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Types   []typeSlot      `json:"types"`
	Stats   []statResponse  `json:"stats"`
	Sprites spritesResponse `json:"sprites"`
	Species namedResource   `json:"species"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type statResponse struct {
	BaseStat int           `json:"base_stat"`
	Stat     namedResource `json:"stat"`
}

type spritesResponse struct {
	FrontDefault string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

type typeResponse struct {
	Name            string            `json:"name"`
	Pokemon         []typeMember      `json:"pokemon"`
	DamageRelations damageRelationSet `json:"damage_relations"`
}

type typeMember struct {
	Slot    int           `json:"slot"`
	Pokemon namedResource `json:"pokemon"`
}

type damageRelationSet struct {
	DoubleDamageFrom []namedResource `json:"double_damage_from"`
}

type speciesResponse struct {
	Name              string        `json:"name"`
	FlavorTextEntries []flavorEntry `json:"flavor_text_entries"`
	EvolutionChain    resourceLink  `json:"evolution_chain"`
}

type resourceLink struct {
	URL string `json:"url"`
}

type flavorEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   namedResource `json:"language"`
}

type evolutionChainResponse struct {
	Chain chainLink `json:"chain"`
}

type chainLink struct {
	Species   namedResource `json:"species"`
	EvolvesTo []chainLink   `json:"evolves_to"`
}
