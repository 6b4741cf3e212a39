package core

// Action represents a semantic board action, abstracted from physical key presses.
// This allows the board session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone           Action = iota
	ActionUp                    // K, Up arrow - move cursor up
	ActionDown                  // J, Down arrow - move cursor down
	ActionLeft                  // H, Left arrow - move cursor left
	ActionRight                 // L, Right arrow - move cursor right
	ActionSelect                // Space - toggle selection of the tile under the cursor
	ActionLongSelect            // Enter - select/deselect the cursor tile's whole category
	ActionCategory              // 1-4 - apply the category's current action
	ActionSelectCategory        // Shift+1-4 - select every tile in a category
	ActionDrag                  // M - pick up or drop a tile
	ActionCancel                // Esc - cancel a drag in progress
	ActionShuffle               // S - shuffle uncategorized tiles
	ActionReset                 // X - reset the board
	ActionRetry                 // R - retry loading after a failure
	ActionHelp                  // ? - toggle full help
	ActionQuit                  // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionLongSelect:
		return "LongSelect"
	case ActionCategory:
		return "Category"
	case ActionSelectCategory:
		return "SelectCategory"
	case ActionDrag:
		return "Drag"
	case ActionCancel:
		return "Cancel"
	case ActionShuffle:
		return "Shuffle"
	case ActionReset:
		return "Reset"
	case ActionRetry:
		return "Retry"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a single decoded key press.
// Slot carries the category index (0-3) for ActionCategory and
// ActionSelectCategory and is ignored otherwise.
type Input struct {
	Action Action
	Slot   int
}

// NewInput creates an input with no category slot.
func NewInput(a Action) Input {
	return Input{Action: a, Slot: -1}
}

// NewSlotInput creates an input for a category slot.
func NewSlotInput(a Action, slot int) Input {
	return Input{Action: a, Slot: slot}
}

// HasSlot reports whether the input targets a category slot.
func (in Input) HasSlot() bool {
	return in.Slot >= 0 && in.Slot < GridWidth
}
