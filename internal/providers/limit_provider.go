package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"pokedex-service/internal/domain/pokemon"
)

const defaultMinInterval = 25 * time.Millisecond

// rateLimitedProvider wraps a DataProvider and enforces a minimum interval between upstream calls.
type rateLimitedProvider struct {
	next     DataProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that spaces calls at least interval apart.
// Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next DataProvider, interval time.Duration, logger *slog.Logger) DataProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable", "op", op)
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited fetch canceled", "op", op)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (p *rateLimitedProvider) FetchIndex(ctx context.Context, limit int) ([]pokemon.EntityRef, error) {
	if err := p.wait(ctx, "fetch index"); err != nil {
		return nil, err
	}
	return p.next.FetchIndex(ctx, limit)
}

func (p *rateLimitedProvider) FetchByType(ctx context.Context, category string) ([]pokemon.EntityRef, error) {
	if err := p.wait(ctx, "fetch type members"); err != nil {
		return nil, err
	}
	return p.next.FetchByType(ctx, category)
}

func (p *rateLimitedProvider) FetchPokemon(ctx context.Context, ref pokemon.EntityRef) (pokemon.EntityRecord, error) {
	if err := p.wait(ctx, "fetch pokemon"); err != nil {
		return pokemon.EntityRecord{}, err
	}
	return p.next.FetchPokemon(ctx, ref)
}

func (p *rateLimitedProvider) FetchPokemonByID(ctx context.Context, id int) (pokemon.EntityRecord, error) {
	if err := p.wait(ctx, "fetch pokemon"); err != nil {
		return pokemon.EntityRecord{}, err
	}
	return p.next.FetchPokemonByID(ctx, id)
}

func (p *rateLimitedProvider) FetchSpecies(ctx context.Context, url string) (pokemon.Species, error) {
	if err := p.wait(ctx, "fetch species"); err != nil {
		return pokemon.Species{}, err
	}
	return p.next.FetchSpecies(ctx, url)
}

func (p *rateLimitedProvider) FetchEvolutionChain(ctx context.Context, url string) ([]pokemon.EvolutionStage, error) {
	if err := p.wait(ctx, "fetch evolution chain"); err != nil {
		return nil, err
	}
	return p.next.FetchEvolutionChain(ctx, url)
}

func (p *rateLimitedProvider) FetchTypeDetail(ctx context.Context, name string) (pokemon.TypeDetail, error) {
	if err := p.wait(ctx, "fetch type detail"); err != nil {
		return pokemon.TypeDetail{}, err
	}
	return p.next.FetchTypeDetail(ctx, name)
}
