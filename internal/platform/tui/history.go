package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/storage"
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "completed only"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the saved-days screen.
type HistoryModel struct {
	records       []storage.BoardRecord
	stats         storage.Stats
	completedOnly bool
	table         table.Model
	help          help.Model
	keys          HistoryKeyMap
	width         int
	height        int
	quitting      bool
}

// NewHistoryModel creates a history model over already-loaded records.
func NewHistoryModel(records []storage.BoardRecord, stats storage.Stats, width, height int) HistoryModel {
	m := HistoryModel{
		records: records,
		stats:   stats,
		keys:    DefaultHistoryKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Sorted", Width: 8},
		{Title: "Finished", Width: 18},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 10
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Rows returns the table rows for the current filter.
func (m HistoryModel) Rows() []table.Row {
	return historyRows(m.records, m.completedOnly)
}

func historyRows(records []storage.BoardRecord, completedOnly bool) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		if completedOnly && !r.Completed() {
			continue
		}
		finished := "-"
		if r.Completed() {
			finished = r.CompletedAt.Local().Format("Jan 02 15:04")
		}
		rows = append(rows, table.Row{
			r.Date.String(),
			fmt.Sprintf("%d/%d", r.Assigned, connections.BoardSize),
			finished,
		})
	}
	return rows
}

// updateTableRows updates the table with current records.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.completedOnly = !m.completedOnly
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("BOARD HISTORY")
	summary := statusStyle.Render(fmt.Sprintf("%d days played, %d finished", m.stats.Saved, m.stats.Completed))
	if m.completedOnly {
		summary += statusStyle.Render("  (finished only)")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var body string
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		body = emptyStyle.Render("No boards saved yet.\nPlay today's puzzle to start a history!")
	} else {
		body = tableStyle.Render(m.table.View())
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		body,
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// RunHistory runs the history screen.
func RunHistory(records []storage.BoardRecord, stats storage.Stats, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(records, stats, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
