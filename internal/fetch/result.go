package fetch

import (
	"fmt"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
)

// FailureKind classifies why a fetch failed.
type FailureKind int

const (
	FailureNetwork FailureKind = iota // transport error
	FailureHTTP                       // non-2xx status
	FailureParsing                    // malformed or unexpected body
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureHTTP:
		return "http"
	case FailureParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

// Result is the outcome of FetchTiles: either Success or Failure.
type Result interface {
	isResult()
}

// Success carries the parsed tiles ordered by card position.
type Success struct {
	Date  core.Date // the puzzle date that was requested
	Tiles []connections.Tile
}

func (Success) isResult() {}

// Failure describes a fetch that produced no tiles.
type Failure struct {
	Kind       FailureKind
	StatusCode int   // set for FailureHTTP
	Err        error // underlying cause, if any
}

func (Failure) isResult() {}

// Error implements error so a Failure can be reported directly.
func (f Failure) Error() string {
	switch f.Kind {
	case FailureHTTP:
		return fmt.Sprintf("fetch: unexpected HTTP status %d", f.StatusCode)
	default:
		if f.Err != nil {
			return fmt.Sprintf("fetch: %s failure: %v", f.Kind, f.Err)
		}
		return fmt.Sprintf("fetch: %s failure", f.Kind)
	}
}

// Unwrap returns the underlying cause.
func (f Failure) Unwrap() error {
	return f.Err
}
