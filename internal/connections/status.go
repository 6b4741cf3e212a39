package connections

// Action is the operation a category button would currently perform.
type Action int

const (
	ActionDisabled Action = iota
	ActionAssign
	ActionClear
	ActionSwap
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionAssign:
		return "assign"
	case ActionClear:
		return "clear"
	case ActionSwap:
		return "swap"
	default:
		return "disabled"
	}
}

// CategoryStatus summarizes what the player can do with one category.
type CategoryStatus struct {
	Complete       bool // exactly four tiles assigned
	AllSelected    bool // the category's tiles, and only those, are selected
	BulkSelectable bool // at least one tile assigned
	Action         Action
}

// DetermineCategoryStatus derives the legal action and flags for category
// from a full scan of tiles.
func DetermineCategoryStatus(tiles []Tile, category Category) CategoryStatus {
	var (
		selectionCount   int
		thisSelected     int
		inCategory       int
		outsideSelected  bool
		otherSelected    = make(map[Category]int)
		categoryTotals   = make(map[Category]int)
		otherCategoryOne Category
	)

	for _, t := range tiles {
		categoryTotals[t.Category]++
		if t.Category == category {
			inCategory++
		}
		if !t.Selected {
			continue
		}
		selectionCount++
		if t.Category == category {
			thisSelected++
			continue
		}
		outsideSelected = true
		if t.HasCategory() {
			otherSelected[t.Category]++
			otherCategoryOne = t.Category
		}
	}

	status := CategoryStatus{
		Complete:       inCategory == RowSize,
		AllSelected:    inCategory > 0 && !outsideSelected && thisSelected == inCategory,
		BulkSelectable: inCategory > 0,
	}

	switch {
	case selectionCount == 0:
		if inCategory > 0 {
			status.Action = ActionClear
		} else {
			status.Action = ActionDisabled
		}

	case inCategory+selectionCount <= RowSize && thisSelected == 0:
		status.Action = ActionAssign

	case len(otherSelected) == 1 && thisSelected == 0 &&
		otherSelected[otherCategoryOne] == categoryTotals[otherCategoryOne]:
		// Whole other category selected: exchange the two categories.
		status.Action = ActionSwap

	case len(otherSelected) == 1 && thisSelected == otherSelected[otherCategoryOne]:
		// Equal-sized picks from both categories: exchange pairwise.
		status.Action = ActionSwap

	case thisSelected == selectionCount:
		status.Action = ActionClear

	default:
		status.Action = ActionDisabled
	}

	return status
}
