// Package core provides fundamental types and utilities for the Reverse Rainbow
// client. It contains no external dependencies (especially no Bubble Tea) to
// keep board logic pure and testable.
package core

// GridWidth is the number of columns (and rows) of the tile grid.
const GridWidth = 4

// GridCells is the total number of slots in the grid.
const GridCells = GridWidth * GridWidth

// GridPos converts a slot index into a (row, col) pair.
func GridPos(index int) (row, col int) {
	return index / GridWidth, index % GridWidth
}

// GridIndex converts a (row, col) pair into a slot index.
func GridIndex(row, col int) int {
	return row*GridWidth + col
}

// MoveCursor moves a slot index by the given row and column deltas,
// clamping at the grid edges.
func MoveCursor(index, dRow, dCol int) int {
	row, col := GridPos(Clamp(index, 0, GridCells-1))
	row = Clamp(row+dRow, 0, GridWidth-1)
	col = Clamp(col+dCol, 0, GridWidth-1)
	return GridIndex(row, col)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
