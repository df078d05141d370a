package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type catalogStats struct {
	hydrations      int
	hydrationErrors int
	hydratedRecords int
	staleDiscards   map[string]int
	indexRefreshes  int
	indexErrors     int
	chatMessages    int
	chatErrors      int
}

// Recorder captures lightweight, in-memory metrics about provider calls and catalog activity,
// mirroring them into OpenTelemetry instruments when configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	catalog catalogStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*providerStats),
		catalog: catalogStats{staleDiscards: make(map[string]int)},
		otel:    otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordHydration tracks one hydration batch of the catalog window.
func (r *Recorder) RecordHydration(records int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.catalog.hydrations++
	if err != nil {
		r.catalog.hydrationErrors++
	} else {
		r.catalog.hydratedRecords += records
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordHydration(records, duration, err)
	}
}

// RecordStaleDiscard counts a completion dropped because a newer operation superseded it.
func (r *Recorder) RecordStaleDiscard(op string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.catalog.staleDiscards[op]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordStaleDiscard(op)
	}
}

// RecordIndexRefresh tracks index refresher cycles and errors.
func (r *Recorder) RecordIndexRefresh(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.catalog.indexRefreshes++
	if err != nil {
		r.catalog.indexErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordIndexRefresh(duration, err)
	}
}

// RecordChatMessage tracks one chat exchange with the completion backend.
func (r *Recorder) RecordChatMessage(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.catalog.chatMessages++
	if err != nil {
		r.catalog.chatErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordChat(duration, err)
	}
}

// CatalogSnapshot is a copy of the catalog counters.
type CatalogSnapshot struct {
	Hydrations      int
	HydrationErrors int
	HydratedRecords int
	StaleDiscards   map[string]int
	IndexRefreshes  int
	IndexErrors     int
	ChatMessages    int
	ChatErrors      int
}

// Catalog returns the current catalog counters.
func (r *Recorder) Catalog() CatalogSnapshot {
	if r == nil {
		return CatalogSnapshot{StaleDiscards: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stale := make(map[string]int, len(r.catalog.staleDiscards))
	for op, n := range r.catalog.staleDiscards {
		stale[op] = n
	}
	return CatalogSnapshot{
		Hydrations:      r.catalog.hydrations,
		HydrationErrors: r.catalog.hydrationErrors,
		HydratedRecords: r.catalog.hydratedRecords,
		StaleDiscards:   stale,
		IndexRefreshes:  r.catalog.indexRefreshes,
		IndexErrors:     r.catalog.indexErrors,
		ChatMessages:    r.catalog.chatMessages,
		ChatErrors:      r.catalog.chatErrors,
	}
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
