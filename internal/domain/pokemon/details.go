package pokemon

// FlavorText is one localized description entry of a species.
type FlavorText struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// Species carries the secondary resource used for flavor text and evolution data.
type Species struct {
	Name              string       `json:"name"`
	FlavorTexts       []FlavorText `json:"flavorTexts"`
	EvolutionChainURL string       `json:"evolutionChainUrl"`
}

// EvolutionStage is one link of an evolution chain.
type EvolutionStage struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// TypeDetail holds the damage relations of one type.
type TypeDetail struct {
	Name             string   `json:"name"`
	DoubleDamageFrom []string `json:"doubleDamageFrom"`
}

// PowerAnalysis summarizes a record's base stat total.
type PowerAnalysis struct {
	Total int    `json:"total"`
	Rank  string `json:"rank"`
}

// Details is the expanded view of one record.
type Details struct {
	Record      EntityRecord     `json:"record"`
	Description string           `json:"description"`
	Evolution   []EvolutionStage `json:"evolution"`
	Weaknesses  []string         `json:"weaknesses"`
	Power       PowerAnalysis    `json:"power"`
}

// Power rank labels, strongest first.
const (
	RankLegendary   = "Legendary / Pseudo-Legendary"
	RankVeryStrong  = "Very Strong"
	RankCompetitive = "Competitive"
	RankNormal      = "Normal"
)

// AnalyzePower ranks a record by its base stat total.
func AnalyzePower(r EntityRecord) PowerAnalysis {
	total := r.StatTotal()
	rank := RankNormal
	switch {
	case total > 580:
		rank = RankLegendary
	case total > 450:
		rank = RankVeryStrong
	case total > 300:
		rank = RankCompetitive
	}
	return PowerAnalysis{Total: total, Rank: rank}
}
