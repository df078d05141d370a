package pokemon

import (
	"strconv"
	"strings"
)

// ArtworkURLTemplate builds official-artwork image URLs from a national dex number.
const ArtworkURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

// EntityRef is the lightweight name + lookup address pair listed by the index and type endpoints.
type EntityRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID returns the numeric identifier embedded in the lookup URL, or 0 when absent.
func (r EntityRef) ID() int {
	id, err := IDFromURL(r.URL)
	if err != nil {
		return 0
	}
	return id
}

// IDFromURL extracts the trailing numeric path segment from a resource URL
// ("https://pokeapi.co/api/v2/pokemon/25/" -> 25).
func IDFromURL(raw string) (int, error) {
	trimmed := strings.TrimRight(raw, "/")
	idx := strings.LastIndex(trimmed, "/")
	segment := trimmed[idx+1:]
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// Stat is a single named base statistic.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Sprites holds the image references of a record.
type Sprites struct {
	Front   string `json:"front,omitempty"`
	Artwork string `json:"artwork,omitempty"`
}

// EntityRecord is a fully hydrated catalog entry. Records are values and never mutated in place.
type EntityRecord struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	Stats      []Stat   `json:"stats"`
	Sprites    Sprites  `json:"sprites"`
	SpeciesURL string   `json:"speciesUrl,omitempty"`
}

// Image prefers the official artwork and falls back to the front sprite.
func (r EntityRecord) Image() string {
	if r.Sprites.Artwork != "" {
		return r.Sprites.Artwork
	}
	return r.Sprites.Front
}

// StatTotal sums every base statistic.
func (r EntityRecord) StatTotal() int {
	total := 0
	for _, s := range r.Stats {
		total += s.Value
	}
	return total
}

// IDs lists record identifiers in order.
func IDs(records []EntityRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
