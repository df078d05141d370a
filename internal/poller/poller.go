// Package poller refreshes the master index in the background.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pokedex-service/internal/catalog"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/logging"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/providers"
)

const (
	defaultInterval   = time.Hour
	defaultIndexLimit = 10000
	readyFailures     = 3
)

// IndexSink receives each freshly fetched master index.
type IndexSink interface {
	ReplaceIndex(ctx context.Context, refs []pokemon.EntityRef) (catalog.View, error)
}

// SnapshotWriter persists the master index to disk.
type SnapshotWriter interface {
	WriteIndexSnapshot(refs []pokemon.EntityRef) error
}

// Poller fetches the master index on boot and on an interval.
type Poller struct {
	provider   providers.IndexProvider
	sink       IndexSink
	writer     SnapshotWriter
	logger     *slog.Logger
	metrics    *metrics.Recorder
	interval   time.Duration
	indexLimit int

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	IndexSize           int       `json:"indexSize"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// Config tunes a Poller. Zero values select the defaults.
type Config struct {
	Interval   time.Duration
	IndexLimit int
}

// New constructs a Poller. writer may be nil.
func New(provider providers.IndexProvider, sink IndexSink, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.IndexLimit <= 0 {
		cfg.IndexLimit = defaultIndexLimit
	}
	return &Poller{
		provider:   provider,
		sink:       sink,
		writer:     writer,
		logger:     logger,
		metrics:    recorder,
		interval:   cfg.Interval,
		indexLimit: cfg.IndexLimit,
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
	}
}

// MarkWarm records a successful load from a snapshot so readiness does not wait for the first fetch.
func (p *Poller) MarkWarm(size int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastSuccess = time.Now()
	p.status.IndexSize = size
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		defer close(p.exited)
		logging.Info(p.logger, "index refresher started", logging.FieldDurationMS, p.interval.Milliseconds())
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "index refresher stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "index refresher stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for it to exit or for ctx to end.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs one fetch cycle synchronously.
func (p *Poller) Refresh(ctx context.Context) Status {
	p.fetchOnce(ctx)
	return p.Status()
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	refs, err := p.provider.FetchIndex(ctx, p.indexLimit)
	if err == nil && p.sink != nil {
		_, err = p.sink.ReplaceIndex(ctx, refs)
	}
	p.metrics.RecordIndexRefresh(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "index refresh failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		p.recordFailure(err, start)
		return
	}

	if p.writer != nil {
		if writeErr := p.writer.WriteIndexSnapshot(refs); writeErr != nil {
			logging.Error(p.logger, "index snapshot write failed", writeErr)
		}
	}
	p.recordSuccess(start, len(refs))
	logging.Info(p.logger, "index refreshed",
		logging.FieldCount, len(refs),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, size int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.IndexSize = size
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
