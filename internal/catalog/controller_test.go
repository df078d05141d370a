package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/testutil"
)

func newController(t *testing.T, src Source, opts Options) *Controller {
	t.Helper()
	if opts.SearchDebounce == 0 {
		opts.SearchDebounce = 10 * time.Millisecond
	}
	c := New(src, opts)
	t.Cleanup(c.Close)
	return c
}

func mustRange(t *testing.T, raw string) pokemon.GenerationRange {
	t.Helper()
	r, err := pokemon.ParseGenerationRange(raw)
	if err != nil {
		t.Fatalf("parse range %q: %v", raw, err)
	}
	return r
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestInitializeShowsFirstPage(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{})

	v, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(v.Records) != 20 || v.Records[0].ID != 1 || v.Records[19].ID != 20 {
		t.Fatalf("unexpected first page ids %v", pokemon.IDs(v.Records))
	}
	if v.Total != 45 || v.Filtered != 45 || !v.HasMore || !v.Ready || v.Loading {
		t.Fatalf("unexpected view %+v", v)
	}
	if src.Calls(testutil.OpIndex) != 1 {
		t.Fatalf("expected a single index request, got %d", src.Calls(testutil.OpIndex))
	}
}

func TestFilterByRangeScenario(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(3))
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	v, err := c.ApplyFilter(context.Background(), mustRange(t, "1-2"), pokemon.All)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
	if v.Filtered != 2 || v.Offset != 0 || v.Filter.Term != "" {
		t.Fatalf("unexpected view %+v", v)
	}
	if src.Calls(testutil.OpByType) != 0 {
		t.Fatalf("range narrowing must not query the network")
	}
}

func TestCategoryLookupPrecedesRangeNarrowing(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(200))
	src.ByType["fire"] = []pokemon.EntityRef{
		testutil.SampleRef(4), testutil.SampleRef(5), testutil.SampleRef(6), testutil.SampleRef(155),
	}
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	v, err := c.ApplyFilter(context.Background(), mustRange(t, "1-151"), "Fire")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if diff := cmp.Diff([]int{4, 5, 6}, pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
	if v.Filter.Category != "fire" || v.Filter.Generation.String() != "1-151" {
		t.Fatalf("unexpected filter %+v", v.Filter)
	}
	if src.Calls(testutil.OpByType) != 1 {
		t.Fatalf("expected exactly one type lookup, got %d", src.Calls(testutil.OpByType))
	}
}

func TestEmptyFilterResultSkipsHydration(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(10))
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	before := src.Calls(testutil.OpPokemon)

	v, err := c.ApplyFilter(context.Background(), mustRange(t, "500-600"), pokemon.All)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(v.Records) != 0 || v.Filtered != 0 || v.HasMore {
		t.Fatalf("expected empty window, got %+v", v)
	}
	if src.Calls(testutil.OpPokemon) != before {
		t.Fatalf("expected no hydration for empty result")
	}
}

func TestUnknownCategoryIsValidationError(t *testing.T) {
	c := newController(t, testutil.NewStubCatalog(testutil.SampleIndex(1)), Options{})
	_, err := c.ApplyFilter(context.Background(), pokemon.AllGenerations(), "shadow")
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHydrationFailureKeepsPriorState(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(30))
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	before := c.View()

	src.Hook = func(_ context.Context, op, key string) error {
		if op == testutil.OpPokemon && key == "3" {
			return &domain.NetworkError{Op: "fetch pokemon", StatusCode: http.StatusBadGateway}
		}
		return nil
	}

	v, err := c.ApplyFilter(context.Background(), mustRange(t, "1-5"), pokemon.All)
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected network error, got %v", err)
	}
	if diff := cmp.Diff(pokemon.IDs(before.Records), pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("window changed after failed hydration (-want +got):\n%s", diff)
	}
	if v.Filtered != before.Filtered || !v.Filter.Generation.All {
		t.Fatalf("filter state changed after failure: %+v", v)
	}
	if v.ErrorKind != "network" || v.Error == "" {
		t.Fatalf("expected error banner, got %+v", v)
	}

	src.Hook = nil
	v, err = c.ApplyFilter(context.Background(), mustRange(t, "1-5"), pokemon.All)
	if err != nil || v.Error != "" {
		t.Fatalf("expected recovery to clear the error, got %v / %q", err, v.Error)
	}
}

func TestOutOfOrderCompletionIsFenced(t *testing.T) {
	rec := metrics.NewRecorder()
	src := testutil.NewStubCatalog(testutil.SampleIndex(3))
	c := newController(t, src, Options{Metrics: rec})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	src.Hook = func(_ context.Context, op, key string) error {
		if op == testutil.OpPokemon && key == "1" {
			once.Do(func() { close(entered) })
			<-release
		}
		return nil
	}

	type result struct {
		view View
		err  error
	}
	slowRange := mustRange(t, "1-1")
	slow := make(chan result, 1)
	go func() {
		v, err := c.ApplyFilter(context.Background(), slowRange, pokemon.All)
		slow <- result{v, err}
	}()
	<-entered

	fast, err := c.ApplyFilter(context.Background(), mustRange(t, "2-2"), pokemon.All)
	if err != nil {
		t.Fatalf("fast filter: %v", err)
	}
	if diff := cmp.Diff([]int{2}, pokemon.IDs(fast.Records)); diff != "" {
		t.Fatalf("unexpected fast window (-want +got):\n%s", diff)
	}

	close(release)
	late := <-slow
	if !errors.Is(late.err, ErrSuperseded) {
		t.Fatalf("expected late completion to be superseded, got %v", late.err)
	}

	v := c.View()
	if diff := cmp.Diff([]int{2}, pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("stale completion overwrote window (-want +got):\n%s", diff)
	}
	if v.Filter.Generation.String() != "2-2" {
		t.Fatalf("stale completion overwrote filter: %+v", v.Filter)
	}
	if got := rec.Catalog().StaleDiscards[opFilter]; got != 1 {
		t.Fatalf("expected one stale discard, got %d", got)
	}
}

func TestLoadMoreIsMonotonicAndUnique(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{})
	v, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	prev := len(v.Records)
	for v.HasMore {
		v, err = c.LoadMore(context.Background())
		if err != nil {
			t.Fatalf("load more: %v", err)
		}
		if len(v.Records) < prev {
			t.Fatalf("window shrank from %d to %d", prev, len(v.Records))
		}
		prev = len(v.Records)
	}
	if len(v.Records) != 45 || v.Offset != 40 {
		t.Fatalf("expected full window at offset 40, got %d records offset %d", len(v.Records), v.Offset)
	}
	seen := make(map[int]bool)
	for _, r := range v.Records {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d in window", r.ID)
		}
		seen[r.ID] = true
	}

	calls := src.Calls(testutil.OpPokemon)
	again, err := c.LoadMore(context.Background())
	if err != nil || len(again.Records) != 45 || src.Calls(testutil.OpPokemon) != calls {
		t.Fatalf("expected exhausted load more to be a no-op")
	}
}

func TestLoadMoreFailureDoesNotAdvanceCursor(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(30))
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	src.Err = &domain.NetworkError{Err: errors.New("reset")}

	v, err := c.LoadMore(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if v.Offset != 0 || len(v.Records) != 20 {
		t.Fatalf("expected cursor and window unchanged, got offset %d len %d", v.Offset, len(v.Records))
	}
}

func TestLoadMoreIsNoOpWhileSearching(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{SearchDebounce: time.Hour})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	c.Search("mon-1")
	calls := src.Calls(testutil.OpPokemon)
	v, err := c.LoadMore(context.Background())
	if err != nil {
		t.Fatalf("load more: %v", err)
	}
	if len(v.Records) != 20 || v.HasMore || src.Calls(testutil.OpPokemon) != calls {
		t.Fatalf("expected load more to be ignored while a term is active, got %+v", v)
	}
}

func TestSearchMatchesFilteredListCaseInsensitively(t *testing.T) {
	refs := []pokemon.EntityRef{
		testutil.NamedRef(1, "bulbasaur"),
		testutil.NamedRef(25, "pikachu"),
		testutil.NamedRef(26, "raichu"),
		testutil.NamedRef(172, "pichu"),
	}
	src := testutil.NewStubCatalog(refs)
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := c.ApplyFilter(context.Background(), mustRange(t, "1-151"), pokemon.All); err != nil {
		t.Fatalf("filter: %v", err)
	}

	v, err := c.SearchNow(context.Background(), "CHU")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if diff := cmp.Diff([]int{25, 26}, pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("search must only match the filtered list (-want +got):\n%s", diff)
	}
	if v.Candidates != 2 || v.Filter.Term != "CHU" || v.HasMore {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	first, err := c.SearchNow(context.Background(), "mon-1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	calls := src.Calls(testutil.OpPokemon)
	second, err := c.SearchNow(context.Background(), "mon-1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if diff := cmp.Diff(first.Records, second.Records); diff != "" {
		t.Fatalf("repeated search changed the window (-first +second):\n%s", diff)
	}
	if src.Calls(testutil.OpPokemon) != calls {
		t.Fatalf("expected repeated search to skip hydration")
	}
}

func TestClearingTermRestoresFirstPage(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{})
	home, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := c.SearchNow(context.Background(), "mon-3"); err != nil {
		t.Fatalf("search: %v", err)
	}

	v, err := c.SearchNow(context.Background(), "")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if diff := cmp.Diff(pokemon.IDs(home.Records), pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("expected first page restored (-want +got):\n%s", diff)
	}
	if v.Offset != 0 || !v.HasMore || v.Candidates != 0 {
		t.Fatalf("unexpected view %+v", v)
	}

	calls := src.Calls(testutil.OpPokemon)
	if _, err := c.SearchNow(context.Background(), ""); err != nil {
		t.Fatalf("clear again: %v", err)
	}
	if src.Calls(testutil.OpPokemon) != calls {
		t.Fatalf("expected no redundant hydration when the window already shows the first page")
	}
}

func TestSearchDebounceCollapsesBursts(t *testing.T) {
	rec := metrics.NewRecorder()
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{Metrics: rec, SearchDebounce: 30 * time.Millisecond})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	hydrations := rec.Catalog().Hydrations

	for _, term := range []string{"m", "mo", "mon", "mon-", "mon-4"} {
		c.Search(term)
	}
	if got := c.View().Filter.Term; got != "mon-4" {
		t.Fatalf("expected term recorded immediately, got %q", got)
	}

	waitFor(t, func() bool {
		v := c.View()
		return !v.Loading && v.Candidates > 0
	})
	v := c.View()
	if diff := cmp.Diff([]int{4, 40, 41, 42, 43, 44, 45}, pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("unexpected search window (-want +got):\n%s", diff)
	}
	if got := rec.Catalog().Hydrations - hydrations; got != 1 {
		t.Fatalf("expected one hydration for the settled term, got %d", got)
	}
}

func TestFilterDropsPendingSearch(t *testing.T) {
	const delay = 30 * time.Millisecond
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{SearchDebounce: delay})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	c.Search("mon-4")
	if _, err := c.ApplyFilter(context.Background(), mustRange(t, "1-30"), pokemon.All); err != nil {
		t.Fatalf("filter: %v", err)
	}
	time.Sleep(4 * delay)

	want := make([]int, 0, 20)
	for id := 1; id <= 20; id++ {
		want = append(want, id)
	}
	v := c.View()
	if v.Filter.Term != "" || v.Filter.Category != pokemon.All || v.Filter.Generation.String() != "1-30" {
		t.Fatalf("expected the filter to stand, got %+v", v.Filter)
	}
	if diff := cmp.Diff(want, pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
	if !v.HasMore || v.Candidates != 0 {
		t.Fatalf("expected pagination to resume, got %+v", v)
	}
}

func TestSlowFilterIsNotSupersededByPendingSearch(t *testing.T) {
	const delay = 30 * time.Millisecond
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	src.ByType["fire"] = []pokemon.EntityRef{testutil.SampleRef(4), testutil.SampleRef(5), testutil.SampleRef(6)}
	src.Hook = func(ctx context.Context, op, _ string) error {
		if op != testutil.OpByType {
			return nil
		}
		select {
		case <-time.After(150 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c := newController(t, src, Options{SearchDebounce: delay})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	c.Search("mon-4")
	v, err := c.ApplyFilter(context.Background(), pokemon.AllGenerations(), "fire")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	time.Sleep(4 * delay)

	if got := c.View(); got.Filter.Category != "fire" || got.Filter.Term != "" {
		t.Fatalf("expected fire filter with no term, got %+v", got.Filter)
	}
	if diff := cmp.Diff([]int{4, 5, 6}, pokemon.IDs(c.View().Records)); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
	if v.Generation != c.View().Generation {
		t.Fatalf("expected no operation after the filter, generation %d -> %d", v.Generation, c.View().Generation)
	}
}

func TestResetDropsPendingSearch(t *testing.T) {
	const delay = 30 * time.Millisecond
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{SearchDebounce: delay})
	home, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := c.ApplyFilter(context.Background(), mustRange(t, "30-45"), pokemon.All); err != nil {
		t.Fatalf("filter: %v", err)
	}

	c.Search("mon-4")
	if _, err := c.ResetToHome(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	time.Sleep(4 * delay)

	v := c.View()
	if v.Filter != pokemon.DefaultFilter() {
		t.Fatalf("expected default filter, got %+v", v.Filter)
	}
	if diff := cmp.Diff(pokemon.IDs(home.Records), pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("expected home page (-want +got):\n%s", diff)
	}
}

func TestResetToHome(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(45))
	c := newController(t, src, Options{})
	home, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := c.ApplyFilter(context.Background(), mustRange(t, "30-45"), pokemon.All); err != nil {
		t.Fatalf("filter: %v", err)
	}

	v, err := c.ResetToHome(context.Background())
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if diff := cmp.Diff(pokemon.IDs(home.Records), pokemon.IDs(v.Records)); diff != "" {
		t.Fatalf("expected home page (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(pokemon.DefaultFilter(), v.Filter); diff != "" {
		t.Fatalf("expected default filter (-want +got):\n%s", diff)
	}
	if v.Filtered != 45 || v.Offset != 0 {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestReplaceIndexInitializesThenSwapsMaster(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(50))
	c := newController(t, src, Options{})

	v, err := c.ReplaceIndex(context.Background(), testutil.SampleIndex(30))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !v.Ready || v.Total != 30 || len(v.Records) != 20 {
		t.Fatalf("expected first replace to initialize, got %+v", v)
	}
	if src.Calls(testutil.OpIndex) != 0 {
		t.Fatalf("replace must not fetch the index")
	}

	calls := src.Calls(testutil.OpPokemon)
	v, err = c.ReplaceIndex(context.Background(), testutil.SampleIndex(50))
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if v.Total != 50 || v.Filtered != 50 || len(v.Records) != 20 {
		t.Fatalf("unexpected view after swap %+v", v)
	}
	if src.Calls(testutil.OpPokemon) != calls {
		t.Fatalf("expected swap without re-hydration")
	}

	if _, err := c.ApplyFilter(context.Background(), mustRange(t, "1-10"), pokemon.All); err != nil {
		t.Fatalf("filter: %v", err)
	}
	v, _ = c.ReplaceIndex(context.Background(), testutil.SampleIndex(60))
	if v.Total != 60 || v.Filtered != 10 {
		t.Fatalf("expected filtered list untouched while a filter is active, got %+v", v)
	}
}

func TestRecordPrefersWindow(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(30))
	c := newController(t, src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	calls := src.Calls(testutil.OpPokemon)

	if r, err := c.Record(context.Background(), 5); err != nil || r.ID != 5 {
		t.Fatalf("unexpected record %+v err %v", r, err)
	}
	if src.Calls(testutil.OpPokemon) != calls {
		t.Fatalf("expected window hit without a fetch")
	}
	if r, err := c.Record(context.Background(), 25); err != nil || r.ID != 25 {
		t.Fatalf("unexpected fetched record %+v err %v", r, err)
	}
	if src.Calls(testutil.OpPokemon) != calls+1 {
		t.Fatalf("expected a single fetch for a record outside the window")
	}
	if _, err := c.Record(context.Background(), 0); domain.Kind(err) != "validation" {
		t.Fatalf("expected validation error for id 0, got %v", err)
	}
}

func TestHydrateTimeoutIsNetworkError(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(3))
	c := newController(t, src, Options{HydrateTimeout: 20 * time.Millisecond})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	src.Hook = func(ctx context.Context, op, _ string) error {
		if op == testutil.OpPokemon {
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}

	_, err := c.ApplyFilter(context.Background(), mustRange(t, "1-2"), pokemon.All)
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) || !netErr.Retryable() {
		t.Fatalf("expected retryable network error on timeout, got %v", err)
	}
}

func TestCloseCancelsInFlightWork(t *testing.T) {
	src := testutil.NewStubCatalog(testutil.SampleIndex(3))
	c := New(src, Options{})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	entered := make(chan struct{})
	src.Hook = func(ctx context.Context, op, _ string) error {
		if op == testutil.OpPokemon {
			close(entered)
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}

	gen := mustRange(t, "1-1")
	done := make(chan error, 1)
	go func() {
		_, err := c.ApplyFilter(context.Background(), gen, pokemon.All)
		done <- err
	}()
	<-entered
	c.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected canceled operation to fail")
		}
	case <-time.After(time.Second):
		t.Fatalf("close did not cancel in-flight hydration")
	}
	c.Close()
	c.Search("ignored")
}
