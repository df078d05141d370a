package pokemon

import (
	"fmt"
	"strconv"
	"strings"

	"pokedex-service/internal/domain"
)

// All is the sentinel value for an unfiltered generation or category.
const All = "all"

// GenerationRange is either "all" or an inclusive identifier bound.
type GenerationRange struct {
	All  bool
	Low  int
	High int
}

// AllGenerations matches every identifier.
func AllGenerations() GenerationRange {
	return GenerationRange{All: true}
}

// ParseGenerationRange accepts "all" (or empty) and "low-high".
func ParseGenerationRange(raw string) (GenerationRange, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == All {
		return AllGenerations(), nil
	}
	lowRaw, highRaw, ok := strings.Cut(raw, "-")
	if !ok {
		return GenerationRange{}, &domain.ValidationError{Field: "generation", Reason: fmt.Sprintf("expected low-high, got %q", raw)}
	}
	low, errLow := strconv.Atoi(strings.TrimSpace(lowRaw))
	high, errHigh := strconv.Atoi(strings.TrimSpace(highRaw))
	if errLow != nil || errHigh != nil {
		return GenerationRange{}, &domain.ValidationError{Field: "generation", Reason: fmt.Sprintf("bounds must be integers, got %q", raw)}
	}
	if low <= 0 || low > high {
		return GenerationRange{}, &domain.ValidationError{Field: "generation", Reason: fmt.Sprintf("invalid bounds %d-%d", low, high)}
	}
	return GenerationRange{Low: low, High: high}, nil
}

// Contains reports whether id falls inside the range.
func (g GenerationRange) Contains(id int) bool {
	if g.All {
		return true
	}
	return id >= g.Low && id <= g.High
}

func (g GenerationRange) String() string {
	if g.All {
		return All
	}
	return fmt.Sprintf("%d-%d", g.Low, g.High)
}

// MarshalText renders the range in its selector form so it round-trips through JSON.
func (g GenerationRange) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText parses the selector form.
func (g *GenerationRange) UnmarshalText(text []byte) error {
	parsed, err := ParseGenerationRange(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Generation names a selectable range.
type Generation struct {
	Name  string          `json:"name"`
	Range GenerationRange `json:"value"`
}

// Generations lists the selectable generation ranges.
func Generations() []Generation {
	return []Generation{
		{Name: "All generations", Range: AllGenerations()},
		{Name: "Gen 1 - Kanto", Range: GenerationRange{Low: 1, High: 151}},
		{Name: "Gen 2 - Johto", Range: GenerationRange{Low: 152, High: 251}},
		{Name: "Gen 3 - Hoenn", Range: GenerationRange{Low: 252, High: 386}},
		{Name: "Gen 4 - Sinnoh", Range: GenerationRange{Low: 387, High: 493}},
		{Name: "Gen 5 - Unova", Range: GenerationRange{Low: 494, High: 649}},
		{Name: "Gen 6 - Kalos", Range: GenerationRange{Low: 650, High: 721}},
		{Name: "Gen 7 - Alola", Range: GenerationRange{Low: 722, High: 809}},
		{Name: "Gen 8 - Galar", Range: GenerationRange{Low: 810, High: 905}},
		{Name: "Gen 9 - Paldea", Range: GenerationRange{Low: 906, High: 1010}},
	}
}

// Categories lists the selectable type tags, "all" first.
func Categories() []string {
	return []string{
		All, "fire", "water", "grass", "electric", "ice", "fighting", "poison", "ground",
		"flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel", "fairy", "normal",
	}
}

// NormalizeCategory lower-cases a tag and maps empty input to "all".
func NormalizeCategory(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return All
	}
	return raw
}

// FilterState is the active generation x category x term predicate.
type FilterState struct {
	Generation GenerationRange `json:"generation"`
	Category   string          `json:"category"`
	Term       string          `json:"term"`
}

// DefaultFilter matches everything.
func DefaultFilter() FilterState {
	return FilterState{Generation: AllGenerations(), Category: All}
}

// FilterByRange keeps refs whose identifier falls inside the range. It never touches the network.
func FilterByRange(refs []EntityRef, gen GenerationRange) []EntityRef {
	if gen.All {
		return refs
	}
	out := make([]EntityRef, 0, len(refs))
	for _, ref := range refs {
		if gen.Contains(ref.ID()) {
			out = append(out, ref)
		}
	}
	return out
}

// MatchName keeps refs whose name contains term, case-insensitively.
func MatchName(refs []EntityRef, term string) []EntityRef {
	needle := strings.ToLower(term)
	out := make([]EntityRef, 0)
	for _, ref := range refs {
		if strings.Contains(strings.ToLower(ref.Name), needle) {
			out = append(out, ref)
		}
	}
	return out
}
