// Package compare pairs two records side by side, stat by stat.
package compare

import (
	"strings"
	"sync"

	"pokedex-service/internal/domain/pokemon"
)

// MaxSelection is the number of records a comparison holds.
const MaxSelection = 2

// Winner labels.
const (
	WinnerA   = "A"
	WinnerB   = "B"
	WinnerTie = "tie"
)

// Row is one compared statistic.
type Row struct {
	Label  string `json:"label"`
	A      int    `json:"a"`
	B      int    `json:"b"`
	Winner string `json:"winner"`
}

// Result is a full comparison of two records.
type Result struct {
	A       pokemon.EntityRecord `json:"a"`
	B       pokemon.EntityRecord `json:"b"`
	ImageA  string               `json:"imageA,omitempty"`
	ImageB  string               `json:"imageB,omitempty"`
	Rows    []Row                `json:"rows"`
	TotalA  int                  `json:"totalA"`
	TotalB  int                  `json:"totalB"`
	Winner  string               `json:"winner"`
	Summary string               `json:"summary"`
}

// State is a snapshot of a Session.
type State struct {
	Active    bool                   `json:"active"`
	Selection []pokemon.EntityRecord `json:"selection"`
	Result    *Result                `json:"result,omitempty"`
}

// Session tracks compare mode and the current selection.
type Session struct {
	mu        sync.Mutex
	active    bool
	selection []pokemon.EntityRecord
}

// NewSession returns an inactive session.
func NewSession() *Session {
	return &Session{}
}

// SetMode turns compare mode on or off. Any change clears the selection.
func (s *Session) SetMode(active bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
	s.selection = nil
	return s.stateLocked()
}

// ToggleMode flips compare mode and clears the selection.
func (s *Session) ToggleMode() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = !s.active
	s.selection = nil
	return s.stateLocked()
}

// Select deselects record when it is already selected, appends it while fewer than
// MaxSelection are held, and otherwise replaces the second slot.
func (s *Session) Select(record pokemon.EntityRecord) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = selectRecord(s.selection, record)
	return s.stateLocked()
}

// Clear drops the selection and keeps the mode.
func (s *Session) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
	return s.stateLocked()
}

// State returns the current snapshot, with a Result once two records are selected.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	st := State{
		Active:    s.active,
		Selection: append([]pokemon.EntityRecord{}, s.selection...),
	}
	if len(s.selection) == MaxSelection {
		res := Compare(s.selection[0], s.selection[1])
		st.Result = &res
	}
	return st
}

func selectRecord(selection []pokemon.EntityRecord, record pokemon.EntityRecord) []pokemon.EntityRecord {
	out := make([]pokemon.EntityRecord, 0, MaxSelection)
	for _, r := range selection {
		if r.ID != record.ID {
			out = append(out, r)
		}
	}
	if len(out) < len(selection) {
		return out
	}
	if len(out) < MaxSelection {
		return append(out, record)
	}
	out[MaxSelection-1] = record
	return out
}

// Compare builds the per-stat rows of a against b, in a's stat order, followed by totals.
func Compare(a, b pokemon.EntityRecord) Result {
	bStats := make(map[string]int, len(b.Stats))
	for _, st := range b.Stats {
		bStats[st.Name] = st.Value
	}
	rows := make([]Row, 0, len(a.Stats))
	for _, st := range a.Stats {
		bv := bStats[st.Name]
		rows = append(rows, Row{Label: Label(st.Name), A: st.Value, B: bv, Winner: winner(st.Value, bv)})
	}
	res := Result{
		A:      a,
		B:      b,
		ImageA: a.Image(),
		ImageB: b.Image(),
		Rows:   rows,
		TotalA: a.StatTotal(),
		TotalB: b.StatTotal(),
	}
	res.Winner = winner(res.TotalA, res.TotalB)
	switch res.Winner {
	case WinnerA:
		res.Summary = a.Name + " wins"
	case WinnerB:
		res.Summary = b.Name + " wins"
	default:
		res.Summary = "draw"
	}
	return res
}

// Label renders a stat name for display ("special-attack" -> "SPECIAL ATTACK").
func Label(stat string) string {
	return strings.ToUpper(strings.ReplaceAll(stat, "-", " "))
}

func winner(a, b int) string {
	switch {
	case a > b:
		return WinnerA
	case b > a:
		return WinnerB
	default:
		return WinnerTie
	}
}
