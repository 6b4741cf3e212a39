// Package tui provides the Bubble Tea front end for the daily board.
// It maps keys to board operations, follows the loader's published state and
// renders the grid with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CheckMsg is sent to trigger a staleness check of the loaded puzzle.
type CheckMsg time.Time

// checkCmd returns a Bubble Tea command that sends a CheckMsg after interval.
func checkCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return CheckMsg(t)
	})
}
