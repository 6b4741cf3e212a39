package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/loader"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
)

// BoardStore persists boards. *storage.Store implements it.
type BoardStore interface {
	SaveSnapshot(snap loader.Snapshot, at time.Time) error
	MarkCompleted(date core.Date, at time.Time) (bool, error)
}

// Options configures a Model.
type Options struct {
	Loader        *loader.Loader // required
	Store         BoardStore     // optional; nil disables persistence
	Clock         core.Clock
	CheckInterval time.Duration // staleness check period; 0 disables it
	Logger        *log.Logger
	Context       context.Context // cancels in-flight refreshes
	Width         int
	Height        int
}

// stateMsg carries a state published by the loader.
type stateMsg struct {
	state loader.State
}

// Model is the Bubble Tea model for the daily board.
type Model struct {
	ctx      context.Context
	loader   *loader.Loader
	states   chan loader.State
	store    BoardStore
	clock    core.Clock
	interval time.Duration
	logger   *log.Logger

	state     loader.State
	board     *connections.Board
	date      core.Date
	game      connections.GameModel
	cursor    int
	drag      DragStatus
	completed bool

	keyMapper *KeyMapper
	help      help.Model
	spinner   spinner.Model
	width     int
	height    int
	quitting  bool
}

// NewModel creates a board model following opts.Loader.
func NewModel(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		ctx:       opts.Context,
		loader:    opts.Loader,
		states:    opts.Loader.Subscribe(),
		store:     opts.Store,
		clock:     opts.Clock,
		interval:  opts.CheckInterval,
		logger:    opts.Logger,
		drag:      DragIdle{},
		keyMapper: NewKeyMapper(DefaultKeyMap()),
		help:      help.New(),
		spinner:   sp,
		width:     opts.Width,
		height:    opts.Height,
	}
	m = m.applyState(opts.Loader.State())
	return m
}

// Init subscribes to the loader and loads today's puzzle if needed.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForState(m.ctx, m.states),
		m.spinner.Tick,
		refreshIfNecessaryCmd(m.ctx, m.loader),
	}
	if m.interval > 0 {
		cmds = append(cmds, checkCmd(m.interval))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stateMsg:
		m = m.applyState(msg.state)
		return m, waitForState(m.ctx, m.states)

	case CheckMsg:
		return m, tea.Batch(refreshIfNecessaryCmd(m.ctx, m.loader), checkCmd(m.interval))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyState adopts a state published by the loader.
func (m Model) applyState(state loader.State) Model {
	m.state = state

	s, ok := state.(loader.Success)
	if !ok {
		m.board = nil
		m.drag = DragIdle{}
		return m
	}
	if s.Board == m.board {
		return m
	}

	m.logger.Debug("board loaded", "date", s.Date.String())
	m.board = s.Board
	m.date = s.Date
	m.game = s.Board.Model()
	m.drag = DragIdle{}
	m.completed = m.game.AllTilesAssigned
	m.persist()
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		m.loader.Unsubscribe(m.states)
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state.(type) {
	case loader.Failure:
		if in.Action == core.ActionRetry {
			return m, refreshCmd(m.ctx, m.loader)
		}
		return m, nil
	case loader.Success:
		return m.handleBoardInput(in), nil
	}
	return m, nil
}

// handleBoardInput applies an input to the loaded board.
func (m Model) handleBoardInput(in core.Input) Model {
	switch in.Action {
	case core.ActionUp:
		m.cursor = core.MoveCursor(m.cursor, -1, 0)
		return m
	case core.ActionDown:
		m.cursor = core.MoveCursor(m.cursor, 1, 0)
		return m
	case core.ActionLeft:
		m.cursor = core.MoveCursor(m.cursor, 0, -1)
		return m
	case core.ActionRight:
		m.cursor = core.MoveCursor(m.cursor, 0, 1)
		return m
	case core.ActionDrag:
		return m.handleDrag()
	case core.ActionCancel:
		m.drag = DragIdle{}
		return m
	}

	// While a tile is picked up only movement, drop and cancel apply.
	if _, dragging := m.drag.(Dragging); dragging {
		return m
	}

	tile, ok := m.board.TileAt(m.cursor)
	if !ok {
		return m
	}

	switch in.Action {
	case core.ActionSelect:
		m.board.Select(tile)
	case core.ActionLongSelect:
		m.board.LongSelect(tile)
	case core.ActionCategory:
		if !in.HasSlot() {
			return m
		}
		m.board.ApplyCategoryAction(connections.Categories[in.Slot])
	case core.ActionSelectCategory:
		if !in.HasSlot() {
			return m
		}
		m.board.SelectAll(connections.Categories[in.Slot])
	case core.ActionShuffle:
		m.board.Shuffle()
	case core.ActionReset:
		m.board.Reset()
	default:
		return m
	}

	return m.afterMutation()
}

// handleDrag picks up the cursor tile, or drops the carried tile onto it.
func (m Model) handleDrag() Model {
	target, ok := m.board.TileAt(m.cursor)
	if !ok {
		return m
	}

	switch d := m.drag.(type) {
	case DragIdle:
		m.drag = Dragging{Source: target}
		return m
	case Dragging:
		m.drag = DragIdle{}
		if d.Source.InitialPosition == target.InitialPosition {
			return m
		}
		m.board.OnDragOver(d.Source, target)
		return m.afterMutation()
	}
	return m
}

// afterMutation refreshes the cached model and persists the board.
func (m Model) afterMutation() Model {
	m.game = m.board.Model()
	m.persist()

	if m.game.AllTilesAssigned && !m.completed {
		m.completed = true
		if m.store != nil {
			if _, err := m.store.MarkCompleted(m.date, m.clock.Now()); err != nil {
				m.logger.Warn("could not record completion", "date", m.date.String(), "error", err)
			}
		}
	}
	return m
}

// persist saves the current board. Best-effort; the game continues regardless.
func (m Model) persist() {
	if m.store == nil || m.board == nil {
		return
	}
	snap := loader.Snapshot{Date: m.date, Tiles: m.board.Tiles()}
	if err := m.store.SaveSnapshot(snap, m.clock.Now()); err != nil {
		m.logger.Warn("could not save board", "date", m.date.String(), "error", err)
	}
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// waitForState blocks until the loader publishes, then delivers it.
// A closed channel or a cancelled ctx ends the subscription.
func waitForState(ctx context.Context, ch chan loader.State) tea.Cmd {
	return func() tea.Msg {
		select {
		case state, ok := <-ch:
			if !ok {
				return nil
			}
			return stateMsg{state: state}
		case <-ctx.Done():
			return nil
		}
	}
}

func refreshCmd(ctx context.Context, l *loader.Loader) tea.Cmd {
	return func() tea.Msg {
		l.Refresh(ctx)
		return nil
	}
}

func refreshIfNecessaryCmd(ctx context.Context, l *loader.Loader) tea.Cmd {
	return func() tea.Msg {
		l.RefreshIfNecessary(ctx)
		return nil
	}
}

// Run starts the Bubble Tea program with a board model.
func Run(opts Options) error {
	ctx, cancel := context.WithCancel(contextOrBackground(opts.Context))
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
