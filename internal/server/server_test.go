package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pokedex-service/internal/catalog"
	"pokedex-service/internal/config"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/poller"
	"pokedex-service/internal/providers/fixture"
	"pokedex-service/internal/providers/pokeapi"
	"pokedex-service/internal/snapshots"
	"pokedex-service/internal/testutil"
)

type stubPoller struct {
	mu           sync.Mutex
	startCalls   int
	stopCalls    int
	refreshCalls int
	warmSize     int
	err          error
	status       poller.Status
}

func (p *stubPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.err
}

func (p *stubPoller) Status() poller.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *stubPoller) Refresh(ctx context.Context) poller.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshCalls++
	return p.status
}

func (p *stubPoller) MarkWarm(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.warmSize = size
}

func (p *stubPoller) calls() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls, p.stopCalls
}

func testConfig() config.Config {
	return config.Config{
		Port:        "0",
		Provider:    "fixture",
		CORSOrigins: []string{"http://localhost:*"},
		Catalog: config.CatalogConfig{
			PageSize:       4,
			SearchDebounce: 10 * time.Millisecond,
			IndexRefresh:   time.Hour,
		},
		Metrics: config.MetricsConfig{Enabled: false},
	}
}

func waitReady(t *testing.T, srv *Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !srv.poller.Status().IsReady() {
		if time.Now().After(deadline) {
			t.Fatalf("poller never became ready: %+v", srv.poller.Status())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServerServesHealthAndCatalog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := newServerWithProvider(testConfig(), nil, fixture.New())
	defer srv.gracefulShutdown()
	srv.poller.Start(ctx)
	waitReady(t, srv)

	router := srv.Handler()

	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/api/catalog", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var view catalog.View
	testutil.DecodeJSON(t, rr, &view)
	if view.Total != 15 || len(view.Records) != 4 || view.Records[0].Name != "bulbasaur" {
		t.Fatalf("unexpected catalog view %+v", view)
	}
}

func TestServerNotReadyBeforeFirstRefresh(t *testing.T) {
	srv := newServerWithProvider(testConfig(), nil, fixture.New())
	defer srv.gracefulShutdown()

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestServerMountsAdminRefreshWithToken(t *testing.T) {
	cfg := testConfig()
	cfg.AdminToken = "tok"
	srv := newServerWithProvider(cfg, nil, fixture.New())
	defer srv.gracefulShutdown()

	req := httptest.NewRequest(http.MethodPost, "/admin/index/refresh", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var status poller.Status
	testutil.DecodeJSON(t, rr, &status)
	if status.IndexSize != 15 {
		t.Fatalf("expected refreshed index of 15, got %+v", status)
	}
	if view := srv.catalog.View(); view.Total != 15 {
		t.Fatalf("expected catalog to hold the refreshed index, got %d", view.Total)
	}
}

func TestServerOmitsAdminWithoutToken(t *testing.T) {
	srv := newServerWithProvider(testConfig(), nil, fixture.New())
	defer srv.gracefulShutdown()

	rr := testutil.Serve(srv.Handler(), http.MethodPost, "/admin/index/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestServerTeamPersistsAcrossRestartWithSQLite(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Path = t.TempDir() + "/pokedex.db"

	first := newServerWithProvider(cfg, nil, fixture.New())
	for _, step := range []struct{ path, body string }{
		{"/api/auth/register", `{"name":"misty"}`},
		{"/api/auth/login", `{"name":"misty"}`},
		{"/api/team/toggle", `{"id":7}`},
	} {
		req := httptest.NewRequest(http.MethodPost, step.path, strings.NewReader(step.body))
		rr := testutil.ServeRequest(first.Handler(), req)
		if rr.Code >= 300 {
			t.Fatalf("%s failed with %d: %s", step.path, rr.Code, rr.Body.String())
		}
	}
	first.gracefulShutdown()

	second := newServerWithProvider(cfg, nil, fixture.New())
	defer second.gracefulShutdown()
	rr := testutil.Serve(second.Handler(), http.MethodGet, "/api/team", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body struct {
		Trainer string                 `json:"trainer"`
		Members []pokemon.EntityRecord `json:"members"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.Trainer != "misty" || len(body.Members) != 1 || body.Members[0].Name != "squirtle" {
		t.Fatalf("unexpected persisted team %+v", body)
	}
}

func TestWarmStartLoadsSnapshot(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.SnapshotDir = t.TempDir()

	refs, err := fixture.New().FetchIndex(context.Background(), 6)
	if err != nil {
		t.Fatalf("fixture index: %v", err)
	}
	if err := snapshots.NewWriter(cfg.Storage.SnapshotDir).WriteIndexSnapshot(refs); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	srv := newServerWithProvider(cfg, nil, fixture.New())
	defer srv.gracefulShutdown()
	srv.warmStart(context.Background())

	status := srv.poller.Status()
	if !status.IsReady() || status.IndexSize != 6 {
		t.Fatalf("expected warm readiness with 6 refs, got %+v", status)
	}
	if view := srv.catalog.View(); view.Total != 6 || len(view.Records) != 4 {
		t.Fatalf("unexpected warmed view total=%d records=%d", view.Total, len(view.Records))
	}
}

func TestWarmStartWithoutSnapshotIsNoop(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.SnapshotDir = t.TempDir()
	srv := newServerWithProvider(cfg, nil, fixture.New())
	defer srv.gracefulShutdown()

	srv.warmStart(context.Background())

	if srv.poller.Status().IsReady() {
		t.Fatalf("expected not ready without a snapshot")
	}
	if srv.catalog.View().Ready {
		t.Fatalf("expected catalog untouched without a snapshot")
	}
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	provider := selectProvider(config.Config{Provider: "unknown"}, nil)
	if _, ok := provider.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback, got %T", provider)
	}
}

func TestSelectProviderChoosesPokeAPI(t *testing.T) {
	provider := selectProvider(config.Config{
		Provider: "pokeapi",
		PokeAPI:  config.PokeAPIConfig{BaseURL: "http://example.com", Timeout: time.Second},
	}, nil)
	if _, ok := provider.(*pokeapi.Client); !ok {
		t.Fatalf("expected pokeapi provider, got %T", provider)
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv := New(testConfig(), nil)
	defer srv.gracefulShutdown()
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &stubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if _, stops := p.calls(); stops != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", stops)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &stubPoller{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if _, stops := p.calls(); stops != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", stops)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &stubPoller{err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{}, &stubPoller{})

	stopCalled := make(chan struct{})
	var once sync.Once
	srv.startServer(func() { once.Do(func() { close(stopCalled) }) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &stubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	starts, stops := plr.calls()
	if starts != 1 {
		t.Fatalf("expected poller Start called once, got %d", starts)
	}
	if stops != 1 {
		t.Fatalf("expected poller Stop called once, got %d", stops)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
