// Package loader orchestrates fetching the daily puzzle and building a board,
// and decides when the board is stale.
package loader

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/observable"
)

// TileFetcher produces today's tiles. *fetch.Fetcher implements it.
type TileFetcher interface {
	FetchTiles(ctx context.Context) fetch.Result
}

// Config holds the collaborators of a Loader.
type Config struct {
	Fetcher TileFetcher // required
	Clock   core.Clock
	Zone    core.ZoneProvider
	Seed    int64 // shuffle seed for new boards; 0 = time-based
	Logger  *log.Logger

	// Restore, when valid, starts the loader in Success instead of Loading.
	Restore *Snapshot
}

// Loader owns the current State and the board inside a Success.
//
// Refreshes may overlap. Each refresh takes a generation number and only the
// most recently started refresh may publish its terminal state; results of
// superseded refreshes are dropped.
type Loader struct {
	fetcher TileFetcher
	clock   core.Clock
	zone    core.ZoneProvider
	seed    int64
	logger  *log.Logger

	mu         sync.Mutex
	generation uint64
	state      *observable.Value[State]
}

// New creates a Loader.
func New(cfg Config) *Loader {
	l := &Loader{
		fetcher: cfg.Fetcher,
		clock:   cfg.Clock,
		zone:    cfg.Zone,
		seed:    cfg.Seed,
		logger:  cfg.Logger,
	}
	if l.clock == nil {
		l.clock = core.SystemClock{}
	}
	if l.zone == nil {
		l.zone = core.SystemZone{}
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}

	var initial State = Loading{}
	if cfg.Restore != nil {
		if err := connections.Validate(cfg.Restore.Tiles); err != nil {
			l.logger.Warn("ignoring invalid saved board", "date", cfg.Restore.Date.String(), "error", err)
		} else {
			initial = Success{
				Date:  cfg.Restore.Date,
				Board: connections.NewBoard(cfg.Restore.Tiles, l.newRand()),
			}
		}
	}
	l.state = observable.New(initial)
	return l
}

// State returns the latest published state.
func (l *Loader) State() State {
	return l.state.Get()
}

// Subscribe returns a channel receiving every published state.
func (l *Loader) Subscribe() chan State {
	return l.state.Subscribe()
}

// Unsubscribe stops delivery to ch and closes it.
func (l *Loader) Unsubscribe(ch chan State) {
	l.state.Unsubscribe(ch)
}

// Today returns the current local date.
func (l *Loader) Today() core.Date {
	return core.Today(l.clock, l.zone)
}

// Refresh publishes Loading, fetches once and publishes the outcome.
// It blocks for the duration of the fetch. If ctx is cancelled by the time
// the fetch returns, nothing further is published.
func (l *Loader) Refresh(ctx context.Context) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.state.Set(Loading{})
	l.mu.Unlock()

	result := l.fetcher.FetchTiles(ctx)
	if ctx.Err() != nil {
		l.logger.Debug("refresh cancelled", "generation", gen)
		return
	}
	next := l.resolve(result)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		l.logger.Debug("dropping superseded refresh", "generation", gen, "latest", l.generation)
		return
	}
	l.state.Set(next)
}

// RefreshIfNecessary refreshes unless the current state is a Success for
// today's date. Reports whether a refresh was performed.
func (l *Loader) RefreshIfNecessary(ctx context.Context) bool {
	if s, ok := l.State().(Success); ok && s.Date == l.Today() {
		return false
	}
	l.Refresh(ctx)
	return true
}

// Snapshot returns the persisted form of the current board, if any.
func (l *Loader) Snapshot() (Snapshot, bool) {
	s, ok := l.State().(Success)
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{Date: s.Date, Tiles: s.Board.Tiles()}, true
}

func (l *Loader) resolve(result fetch.Result) State {
	switch r := result.(type) {
	case fetch.Success:
		if err := connections.Validate(r.Tiles); err != nil {
			l.logger.Error("puzzle does not form a board", "error", err)
			return Failure{Kind: FailureParsing}
		}
		today := l.Today()
		l.logger.Info("puzzle loaded", "date", today.String())
		return Success{Date: today, Board: connections.NewBoard(r.Tiles, l.newRand())}

	case fetch.Failure:
		kind := failureKindFor(r.Kind)
		l.logger.Warn("puzzle load failed", "kind", kind.String(), "error", r)
		return Failure{Kind: kind}

	default:
		l.logger.Error("unexpected fetch result", "result", result)
		return Failure{Kind: FailureParsing}
	}
}

func (l *Loader) newRand() *rand.Rand {
	seed := l.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
