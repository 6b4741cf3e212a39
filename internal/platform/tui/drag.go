package tui

import "github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"

// DragStatus tracks a keyboard drag: DragIdle or Dragging.
type DragStatus interface {
	isDragStatus()
}

// DragIdle means no tile is picked up.
type DragIdle struct{}

func (DragIdle) isDragStatus() {}

// Dragging holds the picked-up tile as it was when picked up.
type Dragging struct {
	Source connections.Tile
}

func (Dragging) isDragStatus() {}
