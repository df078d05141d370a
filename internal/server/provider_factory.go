package server

import (
	"log/slog"

	"pokedex-service/internal/config"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	// One limiter is shared by hydration, details and the index refresher.
	limited := providers.NewRateLimitedProvider(base, cfg.PokeAPI.MinInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}
