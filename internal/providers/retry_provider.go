package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

type backoffFactory func() backoff.BackOff

// retryingProvider wraps a DataProvider with retry/backoff behavior and per-attempt metrics.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackoff   backoffFactory
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
// Only retryable failures are repeated: transport errors, timeouts, 429 and 5xx.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackoff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = initial
			exp.MaxInterval = maxBackoff
			exp.MaxElapsedTime = 0
			return exp
		},
	}
}

func (r *retryingProvider) FetchIndex(ctx context.Context, limit int) ([]pokemon.EntityRef, error) {
	return retry(ctx, r, "fetch index", func(ctx context.Context) ([]pokemon.EntityRef, error) {
		return r.inner.FetchIndex(ctx, limit)
	})
}

func (r *retryingProvider) FetchByType(ctx context.Context, category string) ([]pokemon.EntityRef, error) {
	return retry(ctx, r, "fetch type members", func(ctx context.Context) ([]pokemon.EntityRef, error) {
		return r.inner.FetchByType(ctx, category)
	})
}

func (r *retryingProvider) FetchPokemon(ctx context.Context, ref pokemon.EntityRef) (pokemon.EntityRecord, error) {
	return retry(ctx, r, "fetch pokemon", func(ctx context.Context) (pokemon.EntityRecord, error) {
		return r.inner.FetchPokemon(ctx, ref)
	})
}

func (r *retryingProvider) FetchPokemonByID(ctx context.Context, id int) (pokemon.EntityRecord, error) {
	return retry(ctx, r, "fetch pokemon", func(ctx context.Context) (pokemon.EntityRecord, error) {
		return r.inner.FetchPokemonByID(ctx, id)
	})
}

func (r *retryingProvider) FetchSpecies(ctx context.Context, url string) (pokemon.Species, error) {
	return retry(ctx, r, "fetch species", func(ctx context.Context) (pokemon.Species, error) {
		return r.inner.FetchSpecies(ctx, url)
	})
}

func (r *retryingProvider) FetchEvolutionChain(ctx context.Context, url string) ([]pokemon.EvolutionStage, error) {
	return retry(ctx, r, "fetch evolution chain", func(ctx context.Context) ([]pokemon.EvolutionStage, error) {
		return r.inner.FetchEvolutionChain(ctx, url)
	})
}

func (r *retryingProvider) FetchTypeDetail(ctx context.Context, name string) (pokemon.TypeDetail, error) {
	return retry(ctx, r, "fetch type detail", func(ctx context.Context) (pokemon.TypeDetail, error) {
		return r.inner.FetchTypeDetail(ctx, name)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if r == nil || r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	var lastErr error
	attempt := 0
	operation := func() (T, error) {
		attempt++
		start := time.Now()
		res, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		lastErr = err
		if err == nil {
			return res, nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	policy := backoff.WithContext(&retryAfterBackOff{
		next:    backoff.WithMaxRetries(r.newBackoff(), uint64(r.maxAttempts-1)),
		lastErr: &lastErr,
	}, ctx)

	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay", delay, "err", err)
	}

	res, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"op", op, "attempts", attempt, "err", err)
		return zero, err
	}
	return res, nil
}

// retryable reports whether a failed attempt is worth repeating.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Retryable()
	}
	switch domain.Kind(err) {
	case "validation", "not_found", "conflict", "capacity", "configuration":
		return false
	}
	return true
}

// retryAfterBackOff honours an upstream Retry-After hint in place of the computed delay.
type retryAfterBackOff struct {
	next    backoff.BackOff
	lastErr *error
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	delay := b.next.NextBackOff()
	if delay == backoff.Stop {
		return delay
	}
	if rlErr, ok := AsRateLimitError(*b.lastErr); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	return delay
}

func (b *retryAfterBackOff) Reset() {
	b.next.Reset()
}
