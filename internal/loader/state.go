package loader

import (
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
)

// FailureKind classifies a failed load for the presentation layer.
type FailureKind int

const (
	FailureNetwork FailureKind = iota
	FailureHTTP
	FailureParsing
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

// failureKindFor maps a fetch failure onto the loader's taxonomy.
func failureKindFor(k fetch.FailureKind) FailureKind {
	switch k {
	case fetch.FailureHTTP:
		return FailureHTTP
	case fetch.FailureParsing:
		return FailureParsing
	default:
		return FailureNetwork
	}
}

// State is the loader's published state: Loading, Success or Failure.
type State interface {
	isState()
}

// Loading means a refresh is in flight.
type Loading struct{}

func (Loading) isState() {}

// Success holds the board for Date.
type Success struct {
	Date  core.Date
	Board *connections.Board
}

func (Success) isState() {}

// Failure reports why the last refresh produced no board.
type Failure struct {
	Kind FailureKind
}

func (Failure) isState() {}

// Snapshot is the opaque persisted form of a loaded board.
type Snapshot struct {
	Date  core.Date
	Tiles []connections.Tile
}
