package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/loader"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type stubFetcher struct {
	result fetch.Result
}

func (f stubFetcher) FetchTiles(context.Context) fetch.Result {
	return f.result
}

type memStore struct {
	saves       []loader.Snapshot
	completions []core.Date
}

func (s *memStore) SaveSnapshot(snap loader.Snapshot, _ time.Time) error {
	s.saves = append(s.saves, snap)
	return nil
}

func (s *memStore) MarkCompleted(date core.Date, _ time.Time) (bool, error) {
	s.completions = append(s.completions, date)
	return true, nil
}

func testTiles() []connections.Tile {
	tiles := make([]connections.Tile, connections.BoardSize)
	for i := range tiles {
		tiles[i] = connections.NewTile(i, connections.TextContent{Text: fmt.Sprintf("WORD%d", i)})
	}
	return tiles
}

func newTestLoader(result fetch.Result, restore *loader.Snapshot) *loader.Loader {
	return loader.New(loader.Config{
		Fetcher: stubFetcher{result: result},
		Clock:   core.FixedClock(testNow),
		Zone:    core.FixedZone(time.UTC),
		Seed:    1,
		Restore: restore,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = runeKey(k)
		}
		m = update(t, m, msg)
	}
	return m
}

// loadedModel returns a model that has received a Success for testTiles.
func loadedModel(t *testing.T) (Model, *memStore) {
	t.Helper()
	l := newTestLoader(fetch.Success{Tiles: testTiles()}, nil)
	store := &memStore{}
	m := NewModel(Options{Loader: l, Store: store, Clock: core.FixedClock(testNow)})

	l.Refresh(context.Background())
	m = update(t, m, stateMsg{state: l.State()})
	if m.board == nil {
		t.Fatal("model has no board after Success")
	}
	return m, store
}

// selectSlots moves the cursor to each slot and toggles its selection.
func selectSlots(t *testing.T, m Model, slots ...int) Model {
	t.Helper()
	for _, s := range slots {
		m.cursor = s
		m = press(t, m, " ")
	}
	return m
}

func uncategorizedSlots(m Model) []int {
	var slots []int
	for _, tile := range m.game.Tiles {
		if !tile.HasCategory() {
			slots = append(slots, tile.CurrentPosition)
		}
	}
	return slots
}

func TestModelStartsLoading(t *testing.T) {
	l := newTestLoader(fetch.Success{Tiles: testTiles()}, nil)
	m := NewModel(Options{Loader: l})

	if _, ok := m.state.(loader.Loading); !ok {
		t.Fatalf("state = %T, want Loading", m.state)
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Error("loading view does not mention loading")
	}
	// Board keys are ignored while loading.
	m = press(t, m, " ", "1", "s")
	if m.board != nil {
		t.Error("board appeared without a Success")
	}
}

func TestModelSuccessSavesBoard(t *testing.T) {
	m, store := loadedModel(t)

	if len(store.saves) != 1 {
		t.Fatalf("saves = %d, want 1 after load", len(store.saves))
	}
	want := core.Date{Year: 2025, Month: time.June, Day: 15}
	if store.saves[0].Date != want {
		t.Errorf("saved date = %v, want %v", store.saves[0].Date, want)
	}
	if !strings.Contains(m.View(), "WORD0") {
		t.Error("board view does not show tile labels")
	}

	// Re-delivering the same board does not save again.
	m = update(t, m, stateMsg{state: m.state})
	if len(store.saves) != 1 {
		t.Errorf("saves = %d after duplicate state, want 1", len(store.saves))
	}
}

func TestModelSelectAndMove(t *testing.T) {
	m, store := loadedModel(t)

	m = press(t, m, " ")
	if got := m.game.SelectedCount(); got != 1 {
		t.Fatalf("SelectedCount() = %d, want 1", got)
	}

	m = press(t, m, "j", "l")
	if m.cursor != 5 {
		t.Errorf("cursor = %d, want 5", m.cursor)
	}
	m = press(t, m, " ")
	if got := m.game.SelectedCount(); got != 2 {
		t.Errorf("SelectedCount() = %d, want 2", got)
	}
	if len(store.saves) != 3 {
		t.Errorf("saves = %d, want one per mutation plus load", len(store.saves))
	}

	// Cursor clamps at the edges.
	m = press(t, m, "k", "k", "h", "h", "h")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestModelAssignCategory(t *testing.T) {
	m, _ := loadedModel(t)

	m = selectSlots(t, m, 0, 5, 10, 15)
	m = press(t, m, "1")

	st := m.game.Status(connections.Yellow)
	if !st.Complete {
		t.Fatalf("yellow status = %+v, want complete", st)
	}
	for slot := connections.Yellow.RowStart(); slot < connections.Yellow.RowStart()+connections.RowSize; slot++ {
		tile, _ := m.board.TileAt(slot)
		if tile.Category != connections.Yellow {
			t.Errorf("slot %d category = %v, want yellow", slot, tile.Category)
		}
	}
	if m.game.SelectedCount() != 0 {
		t.Error("selection not cleared after assign")
	}

	// Shift+1 selects the yellow row.
	m = press(t, m, "!")
	if !m.game.Status(connections.Yellow).AllSelected {
		t.Error("shift+1 did not select all yellow tiles")
	}
}

func TestModelCompletion(t *testing.T) {
	m, store := loadedModel(t)

	for i := range connections.Categories {
		free := uncategorizedSlots(m)
		m = selectSlots(t, m, free[:4]...)
		m = press(t, m, fmt.Sprint(i+1))
	}

	if !m.game.AllTilesAssigned {
		t.Fatal("board not fully assigned")
	}
	if len(store.completions) != 1 {
		t.Fatalf("completions = %d, want 1", len(store.completions))
	}
	if !strings.Contains(m.View(), "Every tile is sorted") {
		t.Error("view does not show completion")
	}

	// Further changes do not record another completion.
	m = press(t, m, " ", " ")
	if len(store.completions) != 1 {
		t.Errorf("completions = %d after further moves, want 1", len(store.completions))
	}
}

func TestModelDrag(t *testing.T) {
	m, _ := loadedModel(t)

	m = press(t, m, "m")
	d, ok := m.drag.(Dragging)
	if !ok || d.Source.InitialPosition != 0 {
		t.Fatalf("drag = %+v, want Dragging tile 0", m.drag)
	}

	// Selection is blocked while carrying a tile.
	m = press(t, m, " ")
	if m.game.SelectedCount() != 0 {
		t.Error("select applied during drag")
	}

	m = press(t, m, "l", "m")
	if _, ok := m.drag.(DragIdle); !ok {
		t.Fatalf("drag = %T after drop, want DragIdle", m.drag)
	}
	t0, _ := m.board.TileAt(0)
	t1, _ := m.board.TileAt(1)
	if t0.InitialPosition != 1 || t1.InitialPosition != 0 {
		t.Errorf("slots 0,1 hold tiles %d,%d; want 1,0", t0.InitialPosition, t1.InitialPosition)
	}
}

func TestModelDragCancelAndSelfDrop(t *testing.T) {
	m, store := loadedModel(t)
	saves := len(store.saves)

	m = press(t, m, "m", "esc")
	if _, ok := m.drag.(DragIdle); !ok {
		t.Errorf("esc did not cancel drag: %T", m.drag)
	}

	m = press(t, m, "m", "m")
	if _, ok := m.drag.(DragIdle); !ok {
		t.Errorf("dropping on the source did not end drag: %T", m.drag)
	}
	if len(store.saves) != saves {
		t.Error("cancelled or self drops mutated the board")
	}
}

func TestModelReset(t *testing.T) {
	m, _ := loadedModel(t)

	m = selectSlots(t, m, 0, 1, 2, 3)
	m = press(t, m, "4", "x")

	for _, tile := range m.game.Tiles {
		if tile.HasCategory() || tile.Selected || tile.CurrentPosition != tile.InitialPosition {
			t.Fatalf("tile %+v not reset", tile)
		}
	}
}

func TestModelFailureRetry(t *testing.T) {
	l := newTestLoader(fetch.Failure{Kind: fetch.FailureHTTP, StatusCode: 500}, nil)
	m := NewModel(Options{Loader: l})

	l.Refresh(context.Background())
	m = update(t, m, stateMsg{state: l.State()})

	if _, ok := m.state.(loader.Failure); !ok {
		t.Fatalf("state = %T, want Failure", m.state)
	}
	if !strings.Contains(m.View(), "try again") {
		t.Error("failure view does not offer retry")
	}

	if _, cmd := m.Update(runeKey("r")); cmd == nil {
		t.Error("r produced no refresh command")
	}
	if _, cmd := m.Update(runeKey("s")); cmd != nil {
		t.Error("board keys should do nothing on failure")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := loadedModel(t)

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
	nm := next.(Model)
	if !nm.IsQuitting() {
		t.Error("model not quitting")
	}
	if nm.View() != "" {
		t.Error("quitting model still renders")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := loadedModel(t)
	m = press(t, m, "?")
	if !m.help.ShowAll {
		t.Error("? did not expand help")
	}
	m = press(t, m, "?")
	if m.help.ShowAll {
		t.Error("? did not collapse help")
	}
}

func TestModelRestoredCompleteBoard(t *testing.T) {
	tiles := testTiles()
	for i := range tiles {
		tiles[i].Category = connections.Categories[i/connections.RowSize]
	}
	restore := &loader.Snapshot{Date: core.Date{Year: 2025, Month: time.June, Day: 15}, Tiles: tiles}
	store := &memStore{}

	m := NewModel(Options{Loader: newTestLoader(nil, restore), Store: store})
	if !m.completed {
		t.Error("restored finished board not marked completed")
	}
	m = press(t, m, " ")
	if len(store.completions) != 0 {
		t.Error("restored finished board recorded a second completion")
	}
}
