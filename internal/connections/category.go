// Package connections implements the Connections board: sixteen tiles that the
// player sorts into four colored categories.
//
// The board contains pure logic with no I/O. Every mutation recomputes the
// derived GameModel from a full scan of the tiles and publishes it.
package connections

import (
	"fmt"
	"strings"
)

// Category is one of the four colored groups a tile may be assigned to.
type Category int

const (
	CategoryNone Category = iota
	Yellow
	Green
	Blue
	Purple
)

// Categories lists the assignable categories in difficulty order.
var Categories = [4]Category{Yellow, Green, Blue, Purple}

// rowOrder is the order in which sortGrid packs category rows.
var rowOrder = [4]Category{Purple, Blue, Green, Yellow}

// String returns the lowercase color name.
func (c Category) String() string {
	switch c {
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Purple:
		return "purple"
	default:
		return "none"
	}
}

// ParseCategory parses a color name. "none" and "" map to CategoryNone.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CategoryNone, nil
	case "yellow":
		return Yellow, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	case "purple":
		return Purple, nil
	}
	return CategoryNone, fmt.Errorf("connections: unknown category %q", s)
}

// RowStart returns the first grid slot of the category's fixed row,
// or -1 for CategoryNone.
func (c Category) RowStart() int {
	switch c {
	case Purple:
		return 0
	case Blue:
		return 4
	case Green:
		return 8
	case Yellow:
		return 12
	default:
		return -1
	}
}

// Valid reports whether c is one of the four assignable categories.
func (c Category) Valid() bool {
	return c >= Yellow && c <= Purple
}
