package catalog

import (
	"log/slog"
	"time"

	"pokedex-service/internal/metrics"
)

const (
	defaultPageSize       = 20
	defaultSearchDebounce = 500 * time.Millisecond
	defaultHydrateTimeout = 15 * time.Second
	defaultIndexLimit     = 10000
)

// Options tunes a Controller. Zero values select the defaults.
type Options struct {
	PageSize           int
	SearchDebounce     time.Duration
	HydrateTimeout     time.Duration
	HydrateConcurrency int
	IndexLimit         int
	Logger             *slog.Logger
	Metrics            *metrics.Recorder
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.SearchDebounce <= 0 {
		o.SearchDebounce = defaultSearchDebounce
	}
	if o.HydrateTimeout <= 0 {
		o.HydrateTimeout = defaultHydrateTimeout
	}
	if o.HydrateConcurrency <= 0 {
		o.HydrateConcurrency = o.PageSize
	}
	if o.IndexLimit <= 0 {
		o.IndexLimit = defaultIndexLimit
	}
	return o
}
