package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/logging"
)

// Operation names used in logs and stale-discard metrics.
const (
	opInitialize = "initialize"
	opReplace    = "replace_index"
	opFilter     = "filter"
	opSearch     = "search"
	opMore       = "load_more"
	opReset      = "reset"
)

// Initialize fetches the master index in one request and displays its first page.
func (c *Controller) Initialize(ctx context.Context) (View, error) {
	started := time.Now()
	opCtx, gen := c.begin(ctx)

	refs, err := c.src.FetchIndex(opCtx, c.opts.IndexLimit)
	if err != nil {
		return c.fail(opInitialize, gen, err)
	}
	return c.showIndex(opCtx, opInitialize, gen, started, refs)
}

// ReplaceIndex installs a new master index. The first call behaves like Initialize
// without the fetch; later calls swap the master list (and the filtered list when no
// filter or term is active) without re-hydrating the window.
func (c *Controller) ReplaceIndex(ctx context.Context, refs []pokemon.EntityRef) (View, error) {
	c.mu.Lock()
	if c.state.initialized {
		c.state.master = slices.Clone(refs)
		f := c.state.filter
		if f.Generation.All && f.Category == pokemon.All && f.Term == "" {
			c.state.filtered = c.state.master
		}
		v := c.viewLocked()
		c.mu.Unlock()
		logging.Debug(c.logger, "master index replaced", logging.FieldCount, len(refs))
		return v, nil
	}
	c.mu.Unlock()

	started := time.Now()
	opCtx, gen := c.begin(ctx)
	return c.showIndex(opCtx, opReplace, gen, started, slices.Clone(refs))
}

func (c *Controller) showIndex(ctx context.Context, op string, gen uint64, started time.Time, refs []pokemon.EntityRef) (View, error) {
	records, err := c.hydrate(ctx, c.firstPage(refs))
	if err != nil {
		return c.fail(op, gen, err)
	}
	return c.commit(op, gen, started, func(s *state) {
		s.master = refs
		s.filtered = refs
		s.candidates = nil
		s.filter = pokemon.DefaultFilter()
		s.offset = 0
		s.window = records
		s.initialized = true
	})
}

// ApplyFilter narrows the master index by category then by generation range.
// The category list comes from the upstream per-type lookup; the range is applied
// locally to its result. The term is cleared and the cursor reset.
func (c *Controller) ApplyFilter(ctx context.Context, gen pokemon.GenerationRange, category string) (View, error) {
	category = pokemon.NormalizeCategory(category)
	if !slices.Contains(pokemon.Categories(), category) {
		return c.View(), &domain.ValidationError{Field: "category", Reason: "unknown type " + category}
	}
	c.dropPendingSearch()
	started := time.Now()
	opCtx, fence := c.begin(ctx)

	var base []pokemon.EntityRef
	if category == pokemon.All {
		c.mu.Lock()
		base = c.state.master
		c.mu.Unlock()
	} else {
		members, err := c.src.FetchByType(opCtx, category)
		if err != nil {
			return c.fail(opFilter, fence, err)
		}
		base = members
	}
	filtered := pokemon.FilterByRange(base, gen)

	records, err := c.hydrate(opCtx, c.firstPage(filtered))
	if err != nil {
		return c.fail(opFilter, fence, err)
	}
	logging.Debug(c.logger, "filter applied",
		logging.FieldRange, gen.String(),
		logging.FieldCategory, category,
		logging.FieldCount, len(filtered),
	)
	return c.commit(opFilter, fence, started, func(s *state) {
		s.filter = pokemon.FilterState{Generation: gen, Category: category}
		s.filtered = filtered
		s.candidates = nil
		s.offset = 0
		s.window = records
	})
}

// Search records term at once, so pagination stops immediately, and runs SearchNow
// once input has been quiet for the debounce delay. Each call restarts the delay.
func (c *Controller) Search(term string) {
	c.mu.Lock()
	if c.state.closed {
		c.mu.Unlock()
		return
	}
	c.state.filter.Term = strings.TrimSpace(term)
	c.state.searchEpoch++
	epoch := c.state.searchEpoch
	c.mu.Unlock()

	c.debounce(func() {
		c.mu.Lock()
		if c.state.closed || c.state.searchEpoch != epoch {
			c.mu.Unlock()
			return
		}
		c.pending.Add(1)
		c.mu.Unlock()
		defer c.pending.Done()

		if _, err := c.searchNow(c.baseCtx, term, epoch); err != nil && !errors.Is(err, ErrSuperseded) {
			logging.Warn(c.logger, "debounced search failed", logging.FieldTerm, term, "error", err)
		}
	})
}

// dropPendingSearch stops a debounced search that has not fired yet from running
// after the operation that replaces it, and returns the new search epoch.
func (c *Controller) dropPendingSearch() uint64 {
	c.mu.Lock()
	c.state.searchEpoch++
	epoch := c.state.searchEpoch
	c.mu.Unlock()
	c.debounce(func() {})
	return epoch
}

// SearchNow matches term case-insensitively against the names in the filtered list and
// displays the first page of matches. An empty term restores the filtered list's first page.
// Hydration is skipped when the window already shows exactly the target page.
func (c *Controller) SearchNow(ctx context.Context, term string) (View, error) {
	return c.searchNow(ctx, term, c.dropPendingSearch())
}

func (c *Controller) searchNow(ctx context.Context, term string, epoch uint64) (View, error) {
	term = strings.TrimSpace(term)
	started := time.Now()
	opCtx, gen, ok := c.beginSearch(ctx, epoch)
	if !ok {
		c.metrics.RecordStaleDiscard(opSearch)
		return c.View(), ErrSuperseded
	}

	c.mu.Lock()
	filtered := c.state.filtered
	window := c.state.window
	c.mu.Unlock()

	var candidates []pokemon.EntityRef
	source := filtered
	if term != "" {
		candidates = pokemon.MatchName(filtered, term)
		source = candidates
	}
	page := c.firstPage(source)

	records := window
	if !windowShows(window, page) {
		hydrated, err := c.hydrate(opCtx, page)
		if err != nil {
			return c.fail(opSearch, gen, err)
		}
		records = hydrated
	}
	return c.commit(opSearch, gen, started, func(s *state) {
		s.filter.Term = term
		s.candidates = candidates
		s.offset = 0
		s.window = records
	})
}

// LoadMore appends the next page of the filtered list. It is a no-op while a term is
// active, while another operation is in flight, or when the window already covers the
// filtered list. The cursor advances only when the page commits.
func (c *Controller) LoadMore(ctx context.Context) (View, error) {
	c.mu.Lock()
	s := &c.state
	if s.filter.Term != "" || s.loading || len(s.window) >= len(s.filtered) {
		v := c.viewLocked()
		c.mu.Unlock()
		return v, nil
	}
	next := s.offset + c.opts.PageSize
	refs := pageAt(s.filtered, next, c.opts.PageSize)
	c.mu.Unlock()
	if len(refs) == 0 {
		return c.View(), nil
	}

	started := time.Now()
	opCtx, gen := c.begin(ctx)
	records, err := c.hydrate(opCtx, refs)
	if err != nil {
		return c.fail(opMore, gen, err)
	}
	logging.Debug(c.logger, "page loaded", logging.FieldOffset, next, logging.FieldCount, len(records))
	return c.commit(opMore, gen, started, func(s *state) {
		seen := make(map[int]struct{}, len(s.window))
		for _, r := range s.window {
			seen[r.ID] = struct{}{}
		}
		window := slices.Clone(s.window)
		for _, r := range records {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			window = append(window, r)
		}
		s.window = window
		s.offset = next
	})
}

// ResetToHome clears the term and both filters and shows the master index's first page.
func (c *Controller) ResetToHome(ctx context.Context) (View, error) {
	c.dropPendingSearch()
	started := time.Now()
	opCtx, gen := c.begin(ctx)

	c.mu.Lock()
	master := c.state.master
	window := c.state.window
	c.mu.Unlock()

	page := c.firstPage(master)
	records := window
	if !windowShows(window, page) {
		hydrated, err := c.hydrate(opCtx, page)
		if err != nil {
			return c.fail(opReset, gen, err)
		}
		records = hydrated
	}
	return c.commit(opReset, gen, started, func(s *state) {
		s.filter = pokemon.DefaultFilter()
		s.filtered = s.master
		s.candidates = nil
		s.offset = 0
		s.window = records
	})
}
