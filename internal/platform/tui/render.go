package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/loader"
)

// Tile layout
const (
	tileWidth  = 14 // inner width, excluding border
	tileHeight = 1
)

// categoryColors maps categories to their background colors.
var categoryColors = map[connections.Category]lipgloss.Color{
	connections.Yellow: lipgloss.Color("#F9DF6D"),
	connections.Green:  lipgloss.Color("#A0C35A"),
	connections.Blue:   lipgloss.Color("#B0C4EF"),
	connections.Purple: lipgloss.Color("#BA81C5"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			MarginBottom(1)

	tileStyle = lipgloss.NewStyle().
			Width(tileWidth).
			Height(tileHeight).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.Color("#EFEFE6")).
			Foreground(lipgloss.Color("0"))

	cursorBorderColor = lipgloss.Color("15")
	dragBorderColor   = lipgloss.Color("208")

	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).MarginTop(1)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// render draws the whole screen for the current state.
func (m Model) render() string {
	var body string
	switch s := m.state.(type) {
	case loader.Loading:
		body = m.spinner.View() + " Loading today's puzzle..."
	case loader.Failure:
		body = renderFailure(s)
	case loader.Success:
		body = m.renderBoard()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Reverse Rainbow"),
		body,
		"",
		m.help.View(m.keyMapper.Keys()),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func renderFailure(f loader.Failure) string {
	var reason string
	switch f.Kind {
	case loader.FailureNetwork:
		reason = "Couldn't reach the puzzle server."
	case loader.FailureHTTP:
		reason = "The puzzle server returned an error."
	case loader.FailureParsing:
		reason = "Today's puzzle couldn't be read."
	default:
		reason = "Something went wrong."
	}
	return errorStyle.Render(reason) + "\n" + statusStyle.Render("Press r to try again.")
}

func (m Model) renderBoard() string {
	dragSource := -1
	if d, ok := m.drag.(Dragging); ok {
		dragSource = d.Source.InitialPosition
	}

	rows := make([]string, 0, core.GridWidth)
	for r := 0; r < core.GridWidth; r++ {
		cells := make([]string, 0, core.GridWidth)
		for c := 0; c < core.GridWidth; c++ {
			slot := core.GridIndex(r, c)
			tile, _ := m.board.TileAt(slot)
			cells = append(cells, renderTile(tile, slot == m.cursor, tile.InitialPosition == dragSource))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	parts := []string{
		statusStyle.Render(m.date.String()),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		m.renderCategoryBar(),
	}

	switch {
	case m.game.AllTilesAssigned:
		parts = append(parts, doneStyle.Render("Every tile is sorted."))
	case m.game.MostlyComplete:
		parts = append(parts, hintStyle.Render("Three groups down. The rest must belong together."))
	}
	if _, ok := m.drag.(Dragging); ok {
		parts = append(parts, hintStyle.Render("Moving tile: press m on the destination, esc to cancel."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTile draws one tile. Selected tiles render in reverse video.
func renderTile(t connections.Tile, cursor, dragged bool) string {
	style := tileStyle
	if color, ok := categoryColors[t.Category]; ok {
		style = style.Background(color)
	}
	if t.Selected {
		style = style.Bold(true).Reverse(true)
	}
	switch {
	case dragged:
		style = style.BorderForeground(dragBorderColor).Border(lipgloss.DoubleBorder())
	case cursor:
		style = style.BorderForeground(cursorBorderColor).Border(lipgloss.ThickBorder())
	}
	return style.Render(truncate(t.Label(), tileWidth))
}

// renderCategoryBar shows each category's key and current action.
func (m Model) renderCategoryBar() string {
	items := make([]string, 0, len(connections.Categories))
	for i, c := range connections.Categories {
		st := m.game.Status(c)
		swatch := lipgloss.NewStyle().Background(categoryColors[c]).Render("  ")
		label := fmt.Sprintf("%d %s %s", i+1, swatch, actionLabel(st))
		if st.Action == connections.ActionDisabled {
			label = disabledStyle.Render(fmt.Sprintf("%d ", i+1)) + swatch + disabledStyle.Render(" "+actionLabel(st))
		}
		items = append(items, label)
	}
	return strings.Join(items, "   ")
}

func actionLabel(st connections.CategoryStatus) string {
	label := st.Action.String()
	if st.Complete {
		label += " *"
	}
	return label
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
