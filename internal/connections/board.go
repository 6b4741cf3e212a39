package connections

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/observable"
)

const (
	// BoardSize is the number of tiles on a board.
	BoardSize = 16
	// RowSize is the number of tiles in a category and slots in a row.
	RowSize = 4
	// MaxSelected is the most tiles that may be selected at once.
	MaxSelected = 4
)

// ErrInvalidBoard is wrapped by every board validation error.
var ErrInvalidBoard = errors.New("connections: invalid board")

// GameModel is a read-only snapshot of the board, published after every mutation.
type GameModel struct {
	Tiles            []Tile // ordered by CurrentPosition
	CategoryStatuses map[Category]CategoryStatus
	AllTilesAssigned bool
	MostlyComplete   bool // at least three categories complete
}

// Status returns the status for category.
func (m GameModel) Status(c Category) CategoryStatus {
	return m.CategoryStatuses[c]
}

// SelectedCount returns the number of selected tiles.
func (m GameModel) SelectedCount() int {
	n := 0
	for _, t := range m.Tiles {
		if t.Selected {
			n++
		}
	}
	return n
}

// Board owns the sixteen tiles and all mutations on them.
// A Board is not safe for concurrent use; it expects a single owner.
type Board struct {
	tiles []Tile // tiles[i].CurrentPosition == i
	rng   *rand.Rand
	model *observable.Value[GameModel]
}

// Validate checks the board invariants for tiles.
func Validate(tiles []Tile) error {
	if len(tiles) != BoardSize {
		return fmt.Errorf("%w: expected %d tiles, got %d", ErrInvalidBoard, BoardSize, len(tiles))
	}

	var (
		current  [BoardSize]bool
		initial  [BoardSize]bool
		selected int
		counts   = make(map[Category]int)
	)
	for _, t := range tiles {
		if t.CurrentPosition < 0 || t.CurrentPosition >= BoardSize || current[t.CurrentPosition] {
			return fmt.Errorf("%w: bad or duplicate current position %d", ErrInvalidBoard, t.CurrentPosition)
		}
		if t.InitialPosition < 0 || t.InitialPosition >= BoardSize || initial[t.InitialPosition] {
			return fmt.Errorf("%w: bad or duplicate initial position %d", ErrInvalidBoard, t.InitialPosition)
		}
		current[t.CurrentPosition] = true
		initial[t.InitialPosition] = true

		if t.Selected {
			selected++
		}
		if t.HasCategory() {
			counts[t.Category]++
		}
	}

	if selected > MaxSelected {
		return fmt.Errorf("%w: %d tiles selected, at most %d allowed", ErrInvalidBoard, selected, MaxSelected)
	}
	for _, c := range Categories {
		if counts[c] > RowSize {
			return fmt.Errorf("%w: %d tiles in %s, at most %d allowed", ErrInvalidBoard, counts[c], c, RowSize)
		}
	}
	return nil
}

// NewBoard creates a board from tiles in any order.
// It panics if the tiles violate the board invariants.
// A nil rng is replaced with a time-seeded one.
func NewBoard(tiles []Tile, rng *rand.Rand) *Board {
	if err := Validate(tiles); err != nil {
		panic(err.Error())
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{
		tiles: make([]Tile, BoardSize),
		rng:   rng,
	}
	for _, t := range tiles {
		b.tiles[t.CurrentPosition] = t
	}
	b.model = observable.New(b.buildModel())
	return b
}

// Model returns the latest published snapshot.
func (b *Board) Model() GameModel {
	return b.model.Get()
}

// Subscribe returns a channel receiving every published snapshot.
func (b *Board) Subscribe() chan GameModel {
	return b.model.Subscribe()
}

// Unsubscribe stops delivery to ch and closes it.
func (b *Board) Unsubscribe(ch chan GameModel) {
	b.model.Unsubscribe(ch)
}

// Tiles returns a copy of the tiles ordered by CurrentPosition.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// TileAt returns the tile occupying slot position.
func (b *Board) TileAt(position int) (Tile, bool) {
	if position < 0 || position >= len(b.tiles) {
		return Tile{}, false
	}
	return b.tiles[position], true
}

// DetermineCategoryStatus computes the status of category for the current tiles.
func (b *Board) DetermineCategoryStatus(category Category) CategoryStatus {
	return DetermineCategoryStatus(b.tiles, category)
}

// Select toggles the selection of tile. Selecting a fifth tile is a no-op.
func (b *Board) Select(tile Tile) {
	t := b.lookup(tile)
	if t == nil {
		return
	}
	if !t.Selected && b.selectedCount() >= MaxSelected {
		return
	}
	t.Selected = !t.Selected
	b.publish()
}

// LongSelect selects or deselects the whole category of tile.
// Selecting replaces the current selection; uncategorized tiles are ignored.
func (b *Board) LongSelect(tile Tile) {
	t := b.lookup(tile)
	if t == nil || !t.HasCategory() {
		return
	}

	category := t.Category
	if t.Selected {
		for i := range b.tiles {
			if b.tiles[i].Category == category {
				b.tiles[i].Selected = false
			}
		}
	} else {
		for i := range b.tiles {
			b.tiles[i].Selected = b.tiles[i].Category == category
		}
	}
	b.publish()
}

// SelectAll toggles selection of every tile in category.
func (b *Board) SelectAll(category Category) {
	if b.DetermineCategoryStatus(category).AllSelected {
		for i := range b.tiles {
			if b.tiles[i].Category == category {
				b.tiles[i].Selected = false
			}
		}
	} else {
		for i := range b.tiles {
			b.tiles[i].Selected = b.tiles[i].Category == category
		}
	}
	b.publish()
}

// ApplyCategoryAction performs the category's current action, then clears the
// selection and re-sorts the grid. A disabled action leaves the board untouched.
func (b *Board) ApplyCategoryAction(category Category) {
	switch b.DetermineCategoryStatus(category).Action {
	case ActionDisabled:
		return
	case ActionAssign:
		b.assign(category)
	case ActionClear:
		b.clear(category)
	case ActionSwap:
		b.swap(category)
	}

	b.clearSelection()
	b.sortGrid()
	b.publish()
}

// OnDragOver exchanges source and destination, each taking the other's slot
// and category.
func (b *Board) OnDragOver(source, destination Tile) {
	src := b.lookup(source)
	dst := b.lookup(destination)
	if src == nil || dst == nil {
		return
	}

	s, d := *src, *dst
	s.Category, d.Category = d.Category, s.Category
	b.swapTiles(s, d)

	b.clearSelection()
	b.sortGrid()
	b.publish()
}

// Reset returns every tile to its initial slot, unselected and unassigned.
func (b *Board) Reset() {
	reset := make([]Tile, len(b.tiles))
	for _, t := range b.tiles {
		t.CurrentPosition = t.InitialPosition
		t.Selected = false
		t.Category = CategoryNone
		reset[t.CurrentPosition] = t
	}
	b.tiles = reset
	b.publish()
}

// Shuffle randomly permutes the slots of uncategorized tiles.
// Categorized tiles keep their slots.
func (b *Board) Shuffle() {
	var slots []int
	var free []Tile
	for i, t := range b.tiles {
		if !t.HasCategory() {
			slots = append(slots, i)
			free = append(free, t)
		}
	}

	b.rng.Shuffle(len(free), func(i, j int) {
		free[i], free[j] = free[j], free[i]
	})

	for k, slot := range slots {
		t := free[k]
		t.CurrentPosition = slot
		b.tiles[slot] = t
	}
	b.publish()
}

func (b *Board) assign(category Category) {
	for i := range b.tiles {
		if b.tiles[i].Selected {
			b.tiles[i].Category = category
		}
	}
}

func (b *Board) clear(category Category) {
	anySelected := b.selectedCount() > 0
	for i := range b.tiles {
		t := &b.tiles[i]
		if t.Category != category {
			continue
		}
		if !anySelected || t.Selected {
			t.Category = CategoryNone
		}
	}
}

func (b *Board) swap(category Category) {
	var selectedCategories []Category
	groups := make(map[Category][]Tile)
	for _, t := range b.tiles {
		if !t.Selected || !t.HasCategory() {
			continue
		}
		if _, seen := groups[t.Category]; !seen {
			selectedCategories = append(selectedCategories, t.Category)
		}
		groups[t.Category] = append(groups[t.Category], t)
	}

	switch len(selectedCategories) {
	case 1:
		from := selectedCategories[0]
		if from == category {
			panic(fmt.Sprintf("connections: cannot swap %s with itself", category))
		}
		for i := range b.tiles {
			t := &b.tiles[i]
			switch {
			case t.Selected:
				t.Category = category
			case t.Category == category:
				t.Category = from
			}
		}

	case 2:
		first := groups[selectedCategories[0]]
		second := groups[selectedCategories[1]]
		if len(first) != len(second) {
			panic(fmt.Sprintf("connections: cannot swap %d %s tiles with %d %s tiles",
				len(first), selectedCategories[0], len(second), selectedCategories[1]))
		}
		for k := range first {
			a, c := first[k], second[k]
			a.Category, c.Category = c.Category, a.Category
			b.swapTiles(a, c)
		}

	default:
		panic(fmt.Sprintf("connections: cannot swap across %d selected categories", len(selectedCategories)))
	}
}

// lookup returns the board's copy of tile, matched by its current slot.
func (b *Board) lookup(tile Tile) *Tile {
	if tile.CurrentPosition < 0 || tile.CurrentPosition >= len(b.tiles) {
		return nil
	}
	return &b.tiles[tile.CurrentPosition]
}

func (b *Board) selectedCount() int {
	n := 0
	for _, t := range b.tiles {
		if t.Selected {
			n++
		}
	}
	return n
}

func (b *Board) clearSelection() {
	for i := range b.tiles {
		b.tiles[i].Selected = false
	}
}

func (b *Board) publish() {
	b.model.Set(b.buildModel())
}

func (b *Board) buildModel() GameModel {
	tiles := b.Tiles()
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].CurrentPosition < tiles[j].CurrentPosition
	})

	statuses := make(map[Category]CategoryStatus, len(Categories))
	complete := 0
	for _, c := range Categories {
		s := DetermineCategoryStatus(tiles, c)
		statuses[c] = s
		if s.Complete {
			complete++
		}
	}

	allAssigned := true
	for _, t := range tiles {
		if !t.HasCategory() {
			allAssigned = false
			break
		}
	}

	return GameModel{
		Tiles:            tiles,
		CategoryStatuses: statuses,
		AllTilesAssigned: allAssigned,
		MostlyComplete:   complete >= len(Categories)-1,
	}
}
