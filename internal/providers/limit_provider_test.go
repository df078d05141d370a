package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"pokedex-service/internal/testutil"
)

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := testutil.NewStubCatalog(testutil.SampleIndex(2))
	rl := NewRateLimitedProvider(inner, 20*time.Millisecond, nil)

	start := time.Now()
	if _, err := rl.FetchPokemonByID(context.Background(), 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := rl.FetchPokemonByID(context.Background(), 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected second call to wait for the limiter, elapsed %s", elapsed)
	}
	if inner.Calls(testutil.OpPokemon) != 2 {
		t.Fatalf("expected inner provider called twice, got %d", inner.Calls(testutil.OpPokemon))
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := testutil.NewStubCatalog(testutil.SampleIndex(1))
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	// Drain the single burst token.
	if _, err := rl.FetchIndex(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchIndex(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls(testutil.OpIndex) != 1 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner DataProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchSpecies(context.Background(), "x")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(testutil.NewStubCatalog(nil), 0, nil).(*rateLimitedProvider)
	if rl.interval != defaultMinInterval {
		t.Fatalf("expected default interval %s, got %s", defaultMinInterval, rl.interval)
	}
}
