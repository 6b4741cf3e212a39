// Package fetch downloads the daily puzzle and turns it into board tiles.
// All transport, status and parsing failures are folded into a Result;
// FetchTiles never returns an error or panics on bad input.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
)

// DefaultURLTemplate is the puzzle endpoint; %s is replaced by YYYY-MM-DD.
const DefaultURLTemplate = "https://www.nytimes.com/svc/connections/v2/%s.json"

// Response is the raw outcome of a network call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Network performs a single GET of url.
// It returns an error only for transport failures.
type Network func(ctx context.Context, url string) (Response, error)

// Config holds the collaborators of a Fetcher.
type Config struct {
	// URLTemplate contains one %s for the date. Defaults to DefaultURLTemplate.
	URLTemplate string

	// Clock and Zone determine "today". Default to the system clock and zone.
	Clock core.Clock
	Zone  core.ZoneProvider

	// Network performs the request. Required.
	Network Network

	Logger *log.Logger
}

// Fetcher builds the dated URL, performs one request and parses the result.
type Fetcher struct {
	urlTemplate string
	clock       core.Clock
	zone        core.ZoneProvider
	network     Network
	logger      *log.Logger
}

// New creates a Fetcher, filling unset collaborators with defaults.
func New(cfg Config) *Fetcher {
	f := &Fetcher{
		urlTemplate: cfg.URLTemplate,
		clock:       cfg.Clock,
		zone:        cfg.Zone,
		network:     cfg.Network,
		logger:      cfg.Logger,
	}
	if f.urlTemplate == "" {
		f.urlTemplate = DefaultURLTemplate
	}
	if f.clock == nil {
		f.clock = core.SystemClock{}
	}
	if f.zone == nil {
		f.zone = core.SystemZone{}
	}
	if f.logger == nil {
		f.logger = logging.Discard()
	}
	return f
}

// URL returns the puzzle URL for date.
func (f *Fetcher) URL(date core.Date) string {
	if strings.Contains(f.urlTemplate, "%s") {
		return fmt.Sprintf(f.urlTemplate, date.String())
	}
	return strings.TrimRight(f.urlTemplate, "/") + "/" + date.String() + ".json"
}

// FetchTiles downloads and parses today's puzzle.
func (f *Fetcher) FetchTiles(ctx context.Context) Result {
	date := core.Today(f.clock, f.zone)
	url := f.URL(date)

	resp, err := f.network(ctx, url)
	if err != nil {
		return Failure{Kind: FailureNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("unexpected HTTP status", "status", resp.StatusCode, "url", url)
		return Failure{Kind: FailureHTTP, StatusCode: resp.StatusCode}
	}

	tiles, err := ParseTiles(resp.Body)
	if err != nil {
		f.logger.Error("cannot parse puzzle", "date", date.String(), "error", err)
		return Failure{Kind: FailureParsing, Err: err}
	}

	return Success{Date: date, Tiles: tiles}
}
