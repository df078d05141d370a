// Package catalog keeps the master index, the filtered subset and the hydrated
// window of records consistent across filter, search and pagination operations.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bep/debounce"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/providers"
)

// ErrSuperseded is returned by an operation whose result was discarded because a newer
// operation was issued before it completed.
var ErrSuperseded = errors.New("catalog: superseded by a newer operation")

// Source is the upstream the controller reads from.
type Source interface {
	providers.IndexProvider
	providers.RecordProvider
}

// state is guarded by Controller.mu. Only the completion of the latest issued
// generation may write master/filtered/candidates/window.
type state struct {
	master      []pokemon.EntityRef
	filtered    []pokemon.EntityRef
	candidates  []pokemon.EntityRef
	window      []pokemon.EntityRecord
	filter      pokemon.FilterState
	offset      int
	initialized bool
	loading     bool
	lastErr     error
	gen         uint64
	searchEpoch uint64
	cancel      context.CancelFunc
	closed      bool
}

// Controller owns one browsing session over the catalog.
type Controller struct {
	src     Source
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Recorder

	baseCtx  context.Context
	stopBase context.CancelFunc
	debounce func(f func())
	pending  sync.WaitGroup

	mu    sync.Mutex
	state state
}

// New builds a Controller over src. Call Initialize (or ReplaceIndex) before browsing.
func New(src Source, opts Options) *Controller {
	opts = opts.withDefaults()
	baseCtx, stop := context.WithCancel(context.Background())
	return &Controller{
		src:      src,
		opts:     opts,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		baseCtx:  baseCtx,
		stopBase: stop,
		debounce: debounce.New(opts.SearchDebounce),
		state:    state{filter: pokemon.DefaultFilter()},
	}
}

// View is an immutable snapshot of the controller state.
type View struct {
	Records    []pokemon.EntityRecord `json:"records"`
	Filter     pokemon.FilterState    `json:"filter"`
	Offset     int                    `json:"offset"`
	Total      int                    `json:"total"`
	Filtered   int                    `json:"filtered"`
	Candidates int                    `json:"candidates"`
	HasMore    bool                   `json:"hasMore"`
	Loading    bool                   `json:"loading"`
	Ready      bool                   `json:"ready"`
	Error      string                 `json:"error,omitempty"`
	ErrorKind  string                 `json:"errorKind,omitempty"`
	Generation uint64                 `json:"generation"`
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	s := &c.state
	v := View{
		Records:    append([]pokemon.EntityRecord{}, s.window...),
		Filter:     s.filter,
		Offset:     s.offset,
		Total:      len(s.master),
		Filtered:   len(s.filtered),
		Candidates: len(s.candidates),
		HasMore:    s.filter.Term == "" && len(s.window) < len(s.filtered),
		Loading:    s.loading,
		Ready:      s.initialized,
		Generation: s.gen,
	}
	if s.lastErr != nil {
		v.Error = s.lastErr.Error()
		v.ErrorKind = domain.Kind(s.lastErr)
	}
	return v
}

// Record returns the record with id from the window, fetching it when it is not displayed.
func (c *Controller) Record(ctx context.Context, id int) (pokemon.EntityRecord, error) {
	if id <= 0 {
		return pokemon.EntityRecord{}, &domain.ValidationError{Field: "id", Reason: "must be positive"}
	}
	c.mu.Lock()
	for _, r := range c.state.window {
		if r.ID == id {
			c.mu.Unlock()
			return r, nil
		}
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.opts.HydrateTimeout)
	defer cancel()
	return c.src.FetchPokemonByID(ctx, id)
}

// Close cancels in-flight work and waits for a running debounced search to return.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state.closed {
		c.mu.Unlock()
		return
	}
	c.state.closed = true
	if c.state.cancel != nil {
		c.state.cancel()
		c.state.cancel = nil
	}
	c.mu.Unlock()

	// Replace any pending search with a no-op.
	c.debounce(func() {})
	c.stopBase()
	c.pending.Wait()
}
