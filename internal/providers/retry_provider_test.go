package providers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/testutil"
)

func flakeyCatalog(failures int32, failWith error) (*testutil.StubProvider, *atomic.Int32) {
	p := testutil.NewStubCatalog(testutil.SampleIndex(3))
	var calls atomic.Int32
	p.Hook = func(_ context.Context, op, _ string) error {
		if op != testutil.OpIndex {
			return nil
		}
		if calls.Add(1) <= failures {
			return failWith
		}
		return nil
	}
	return p, &calls
}

func zeroBackoff(rp *retryingProvider) {
	rp.newBackoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp, calls := flakeyCatalog(2, &domain.NetworkError{Err: errors.New("reset")})
	rp := NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	refs, err := rp.FetchIndex(context.Background(), 0)
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("unexpected refs %+v", refs)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp, calls := flakeyCatalog(5, &domain.NetworkError{StatusCode: http.StatusBadGateway})
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond)

	_, err := rp.FetchIndex(context.Background(), 0)
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected network error after retries, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestRetryingProviderDoesNotRetryPermanentFailures(t *testing.T) {
	fp, calls := flakeyCatalog(5, &domain.NetworkError{StatusCode: http.StatusNotFound})
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	_, err := rp.FetchIndex(context.Background(), 0)
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) || netErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected the 404 to surface unwrapped, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp, _ := flakeyCatalog(5, &domain.NetworkError{Err: errors.New("reset")})
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rp.FetchIndex(ctx, 0); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp, _ := flakeyCatalog(1, &domain.NetworkError{
		StatusCode: http.StatusTooManyRequests,
		Err:        &RateLimitError{Provider: "test", StatusCode: http.StatusTooManyRequests},
	})
	rp := NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond).(*retryingProvider)
	zeroBackoff(rp)

	if _, err := rp.FetchIndex(context.Background(), 0); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls("rl"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors("rl"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryAfterBackOffPrefersUpstreamHint(t *testing.T) {
	var lastErr error = &RateLimitError{RetryAfter: 3 * time.Second}
	b := &retryAfterBackOff{next: backoff.NewConstantBackOff(50 * time.Millisecond), lastErr: &lastErr}

	if got := b.NextBackOff(); got != 3*time.Second {
		t.Fatalf("expected retry-after delay 3s, got %s", got)
	}

	lastErr = errors.New("boom")
	if got := b.NextBackOff(); got != 50*time.Millisecond {
		t.Fatalf("expected computed delay, got %s", got)
	}

	stop := &retryAfterBackOff{next: &backoff.StopBackOff{}, lastErr: &lastErr}
	if got := stop.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to pass through, got %s", got)
	}
}

func TestRetryableClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"rate_limit", &RateLimitError{}, true},
		{"server_error", &domain.NetworkError{StatusCode: 503}, true},
		{"not_found_status", &domain.NetworkError{StatusCode: 404}, false},
		{"not_found", &domain.NotFoundError{Resource: "pokemon"}, false},
		{"unknown", errors.New("decode"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryable(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRetryingProviderWrapsEveryOperation(t *testing.T) {
	p := testutil.NewStubCatalog(testutil.SampleIndex(1))
	p.ByType["fire"] = testutil.SampleIndex(1)
	rp := NewRetryingProvider(p, nil, nil, "", 0, 0)
	ctx := context.Background()

	if refs, err := rp.FetchByType(ctx, "fire"); err != nil || len(refs) != 1 {
		t.Fatalf("unexpected type members %v err %v", refs, err)
	}
	if rec, err := rp.FetchPokemon(ctx, testutil.SampleRef(1)); err != nil || rec.ID != 1 {
		t.Fatalf("unexpected record %+v err %v", rec, err)
	}
	if _, err := rp.FetchSpecies(ctx, "missing"); domain.Kind(err) != "not_found" {
		t.Fatalf("expected not found species, got %v", err)
	}
	if p.Calls(testutil.OpSpecies) != 1 {
		t.Fatalf("expected not found to skip retries, got %d calls", p.Calls(testutil.OpSpecies))
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, metrics.NewRecorder(), "", 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	if _, err := rp.FetchIndex(context.Background(), 0); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected unavailable for nil inner, got %v", err)
	}
}
