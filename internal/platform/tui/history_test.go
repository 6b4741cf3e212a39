package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/storage"
)

func testRecords() []storage.BoardRecord {
	return []storage.BoardRecord{
		{Date: core.Date{Year: 2025, Month: time.June, Day: 15}, Assigned: 8},
		{
			Date:        core.Date{Year: 2025, Month: time.June, Day: 14},
			Assigned:    16,
			CompletedAt: time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC),
		},
	}
}

func TestHistoryRows(t *testing.T) {
	m := NewHistoryModel(testRecords(), storage.Stats{Saved: 2, Completed: 1}, 80, 24)

	rows := m.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "2025-06-15" || rows[0][1] != "8/16" || rows[0][2] != "-" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][1] != "16/16" || rows[1][2] == "-" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestHistoryFilter(t *testing.T) {
	m := NewHistoryModel(testRecords(), storage.Stats{Saved: 2, Completed: 1}, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	rows := m.Rows()
	if len(rows) != 1 || rows[0][0] != "2025-06-14" {
		t.Errorf("filtered rows = %v, want only 2025-06-14", rows)
	}
	if !strings.Contains(m.View(), "finished only") {
		t.Error("view does not show the filter")
	}
}

func TestHistoryEmptyAndQuit(t *testing.T) {
	m := NewHistoryModel(nil, storage.Stats{}, 80, 24)
	if !strings.Contains(m.View(), "No boards saved yet") {
		t.Error("empty history has no placeholder")
	}

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil || next.(HistoryModel).View() != "" {
		t.Error("q did not quit")
	}
}
