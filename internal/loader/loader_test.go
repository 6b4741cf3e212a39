package loader

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
)

func testTiles(n int) []connections.Tile {
	tiles := make([]connections.Tile, n)
	for i := range tiles {
		tiles[i] = connections.NewTile(i, connections.TextContent{Text: fmt.Sprintf("W%d", i)})
	}
	return tiles
}

// stubFetcher returns a fixed result and counts calls.
type stubFetcher struct {
	mu     sync.Mutex
	calls  int
	result fetch.Result
	during func() // invoked inside FetchTiles
}

func (f *stubFetcher) FetchTiles(context.Context) fetch.Result {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.during != nil {
		f.during()
	}
	return f.result
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// gatedFetcher blocks call n until gates[n] delivers a result.
type gatedFetcher struct {
	mu      sync.Mutex
	calls   int
	gates   []chan fetch.Result
	started chan int
}

func newGatedFetcher(n int) *gatedFetcher {
	f := &gatedFetcher{started: make(chan int, n)}
	for i := 0; i < n; i++ {
		f.gates = append(f.gates, make(chan fetch.Result))
	}
	return f
}

func (f *gatedFetcher) FetchTiles(context.Context) fetch.Result {
	f.mu.Lock()
	n := f.calls
	f.calls++
	f.mu.Unlock()
	f.started <- n
	return <-f.gates[n]
}

type mutableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *mutableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mutableClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

var testNow = time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)

func newTestLoader(f TileFetcher) *Loader {
	return New(Config{
		Fetcher: f,
		Clock:   core.FixedClock(testNow),
		Zone:    core.FixedZone(time.UTC),
		Seed:    1,
	})
}

func TestNewStartsLoading(t *testing.T) {
	l := newTestLoader(&stubFetcher{})
	if _, ok := l.State().(Loading); !ok {
		t.Errorf("initial state = %T, want Loading", l.State())
	}
}

func TestRefreshPublishesLoadingBeforeFetch(t *testing.T) {
	var l *Loader
	var during State
	f := &stubFetcher{result: fetch.Failure{Kind: fetch.FailureHTTP, StatusCode: 500}}
	f.during = func() { during = l.State() }
	l = newTestLoader(f)

	// Start from a terminal state so Loading is a visible transition.
	l.Refresh(context.Background())
	l.Refresh(context.Background())

	if _, ok := during.(Loading); !ok {
		t.Errorf("state during fetch = %T, want Loading", during)
	}
}

func TestRefreshSuccess(t *testing.T) {
	f := &stubFetcher{result: fetch.Success{Tiles: testTiles(16)}}
	l := newTestLoader(f)

	l.Refresh(context.Background())

	s, ok := l.State().(Success)
	if !ok {
		t.Fatalf("state = %T, want Success", l.State())
	}
	if s.Date.String() != "2025-06-14" {
		t.Errorf("Date = %s, want 2025-06-14", s.Date)
	}
	if got := len(s.Board.Tiles()); got != connections.BoardSize {
		t.Errorf("board has %d tiles", got)
	}
	if f.Calls() != 1 {
		t.Errorf("expected one fetch, got %d", f.Calls())
	}
}

func TestRefreshFailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		result fetch.Result
		want   FailureKind
	}{
		{name: "network", result: fetch.Failure{Kind: fetch.FailureNetwork}, want: FailureNetwork},
		{name: "http", result: fetch.Failure{Kind: fetch.FailureHTTP, StatusCode: 404}, want: FailureHTTP},
		{name: "parsing", result: fetch.Failure{Kind: fetch.FailureParsing}, want: FailureParsing},
		{name: "wrong tile count", result: fetch.Success{Tiles: testTiles(12)}, want: FailureParsing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLoader(&stubFetcher{result: tc.result})
			l.Refresh(context.Background())

			failure, ok := l.State().(Failure)
			if !ok {
				t.Fatalf("state = %T, want Failure", l.State())
			}
			if failure.Kind != tc.want {
				t.Errorf("Kind = %s, want %s", failure.Kind, tc.want)
			}
		})
	}
}

func TestRefreshIfNecessary(t *testing.T) {
	clock := &mutableClock{now: testNow}
	loc := time.UTC
	zone := core.ZoneFunc(func() *time.Location { return loc })
	f := &stubFetcher{result: fetch.Success{Tiles: testTiles(16)}}
	l := New(Config{Fetcher: f, Clock: clock, Zone: zone, Seed: 1})

	if !l.RefreshIfNecessary(context.Background()) {
		t.Fatal("Loading state should trigger a refresh")
	}
	if f.Calls() != 1 {
		t.Fatalf("expected 1 fetch, got %d", f.Calls())
	}

	// Same day: no-op.
	clock.Set(testNow.Add(6 * time.Hour))
	if l.RefreshIfNecessary(context.Background()) {
		t.Error("same-day check should not refresh")
	}
	if f.Calls() != 1 {
		t.Errorf("expected 1 fetch, got %d", f.Calls())
	}

	// Timezone change crosses midnight without the clock moving.
	loc = time.FixedZone("UTC+8", 8*60*60)
	if !l.RefreshIfNecessary(context.Background()) {
		t.Error("timezone change to the next day should refresh")
	}
	if f.Calls() != 2 {
		t.Errorf("expected 2 fetches, got %d", f.Calls())
	}
	if s := l.State().(Success); s.Date.String() != "2025-06-15" {
		t.Errorf("Date = %s, want 2025-06-15", s.Date)
	}

	// Elapsed time crosses midnight.
	clock.Set(testNow.Add(48 * time.Hour))
	if !l.RefreshIfNecessary(context.Background()) {
		t.Error("day rollover should refresh")
	}
}

func TestRefreshIfNecessaryAfterFailure(t *testing.T) {
	f := &stubFetcher{result: fetch.Failure{Kind: fetch.FailureNetwork}}
	l := newTestLoader(f)
	l.Refresh(context.Background())

	if !l.RefreshIfNecessary(context.Background()) {
		t.Error("Failure state should trigger a refresh")
	}
	if f.Calls() != 2 {
		t.Errorf("expected 2 fetches, got %d", f.Calls())
	}
}

func runOverlapping(t *testing.T, finishFirst int) (*Loader, []fetch.Result) {
	t.Helper()
	f := newGatedFetcher(2)
	l := newTestLoader(f)

	results := []fetch.Result{
		fetch.Failure{Kind: fetch.FailureHTTP, StatusCode: 500},
		fetch.Success{Tiles: testTiles(16)},
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Refresh(context.Background())
		}()
		// Wait for this refresh to reach the fetch so generations are ordered.
		<-f.started
	}

	other := 1 - finishFirst
	f.gates[finishFirst] <- results[finishFirst]
	f.gates[other] <- results[other]
	wg.Wait()
	return l, results
}

func TestOverlappingRefreshLatestFinishesFirst(t *testing.T) {
	l, _ := runOverlapping(t, 1)
	if _, ok := l.State().(Success); !ok {
		t.Errorf("state = %T, want Success from the latest refresh", l.State())
	}
}

func TestOverlappingRefreshEarliestFinishesFirst(t *testing.T) {
	l, _ := runOverlapping(t, 0)
	if _, ok := l.State().(Success); !ok {
		t.Errorf("state = %T, want Success from the latest refresh", l.State())
	}
}

func TestSupersededRefreshDoesNotPublish(t *testing.T) {
	f := newGatedFetcher(2)
	l := newTestLoader(f)

	done := make(chan struct{}, 2)
	go func() { l.Refresh(context.Background()); done <- struct{}{} }()
	<-f.started
	go func() { l.Refresh(context.Background()); done <- struct{}{} }()
	<-f.started

	f.gates[0] <- fetch.Failure{Kind: fetch.FailureNetwork}
	<-done
	if _, ok := l.State().(Loading); !ok {
		t.Errorf("superseded result was published: %T", l.State())
	}

	f.gates[1] <- fetch.Failure{Kind: fetch.FailureHTTP}
	<-done
	if failure, ok := l.State().(Failure); !ok || failure.Kind != FailureHTTP {
		t.Errorf("state = %#v, want HTTP failure", l.State())
	}
}

func TestCancelledRefreshDoesNotPublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := &stubFetcher{result: fetch.Failure{Kind: fetch.FailureNetwork}}
	f.during = cancel
	l := newTestLoader(f)

	l.Refresh(ctx)

	if _, ok := l.State().(Loading); !ok {
		t.Errorf("state = %T, want Loading after cancellation", l.State())
	}
}

func TestRestoreSnapshot(t *testing.T) {
	tiles := testTiles(16)
	tiles[0].Category = connections.Purple
	date := core.Date{Year: 2025, Month: time.June, Day: 14}

	f := &stubFetcher{result: fetch.Success{Tiles: testTiles(16)}}
	l := New(Config{
		Fetcher: f,
		Clock:   core.FixedClock(testNow),
		Zone:    core.FixedZone(time.UTC),
		Restore: &Snapshot{Date: date, Tiles: tiles},
	})

	s, ok := l.State().(Success)
	if !ok {
		t.Fatalf("state = %T, want restored Success", l.State())
	}
	if tile, _ := s.Board.TileAt(0); tile.Category != connections.Purple {
		t.Error("restored board lost its assignment")
	}
	if l.RefreshIfNecessary(context.Background()) {
		t.Error("restored board for today should not refresh")
	}
	if f.Calls() != 0 {
		t.Errorf("expected no fetches, got %d", f.Calls())
	}

	snap, ok := l.Snapshot()
	if !ok || snap.Date != date || len(snap.Tiles) != connections.BoardSize {
		t.Errorf("Snapshot() = %+v, %v", snap, ok)
	}
}

func TestRestoreInvalidSnapshotStartsLoading(t *testing.T) {
	l := New(Config{
		Fetcher: &stubFetcher{},
		Restore: &Snapshot{Date: core.Date{Year: 2025, Month: 1, Day: 1}, Tiles: testTiles(3)},
	})
	if _, ok := l.State().(Loading); !ok {
		t.Errorf("state = %T, want Loading", l.State())
	}
	if _, ok := l.Snapshot(); ok {
		t.Error("Snapshot() should report no board")
	}
}

func TestSubscribeObservesTransitions(t *testing.T) {
	f := &stubFetcher{result: fetch.Success{Tiles: testTiles(16)}}
	l := newTestLoader(f)
	ch := l.Subscribe()
	defer l.Unsubscribe(ch)

	l.Refresh(context.Background())

	// The buffer keeps only the latest value.
	if _, ok := (<-ch).(Success); !ok {
		t.Error("subscriber should observe the terminal Success")
	}
}
