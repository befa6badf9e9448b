package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m
}

var sheets = []string{"Sheet1", "Data", "Notes", "Summary", "Q1", "Q2", "Q3"}

func TestPicker_SelectsUnderCursor(t *testing.T) {
	m := newModel("Pick", sheets, GridConfig{ColumnsPerRow: 2, RowsPerPage: 2})

	m = press(t, m, "l", "j", "enter")
	assert.Equal(t, "Summary", m.chosen)
	assert.False(t, m.cancelled)
}

func TestPicker_PagesRightAndLeft(t *testing.T) {
	m := newModel("Pick", sheets, GridConfig{ColumnsPerRow: 2, RowsPerPage: 2})

	m = press(t, m, "l", "l")
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 4, m.currentIndex())

	m = press(t, m, "h")
	assert.Equal(t, 0, m.page)
	assert.Equal(t, 1, m.col)

	m = press(t, m, "l", "l", "j", "enter")
	assert.Equal(t, "Q3", m.chosen)
}

func TestPicker_CursorStaysOnLastPage(t *testing.T) {
	m := newModel("Pick", sheets, GridConfig{ColumnsPerRow: 2, RowsPerPage: 2})

	m = press(t, m, "l", "l", "l", "j", "j", "l", "l")
	assert.Equal(t, 6, m.currentIndex())
	assert.False(t, m.hasNextPage())
}

func TestPicker_Cancel(t *testing.T) {
	m := newModel("Pick", sheets, GridConfig{ColumnsPerRow: 3, RowsPerPage: 1})
	m = press(t, m, "q")
	assert.True(t, m.cancelled)
	assert.Empty(t, m.chosen)

	m = newModel("Pick", sheets, GridConfig{ColumnsPerRow: 3, RowsPerPage: 1})
	m = press(t, m, "esc")
	assert.True(t, m.cancelled)
}

func TestPicker_ViewShowsSheetsAndPage(t *testing.T) {
	m := newModel("Choose a sheet", sheets, GridConfig{ColumnsPerRow: 3, RowsPerPage: 1})
	view := m.View()
	assert.Contains(t, view, "Choose a sheet")
	assert.Contains(t, view, "Page 1/3")
	assert.Contains(t, view, "Sheet1")
	assert.Contains(t, view, "Notes")
	assert.NotContains(t, view, "Summary")
}

func TestPicker_ZeroGridFallsBackToOne(t *testing.T) {
	m := newModel("Pick", sheets, GridConfig{})
	assert.Equal(t, 1, m.itemsPerPage)
	m = press(t, m, "l", "l", "enter")
	assert.Equal(t, "Notes", m.chosen)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Summary", truncate("Summary", 10))
	assert.Equal(t, "Quarte...", truncate("Quarterly totals", 9))
	assert.Equal(t, "Qu", truncate("Quarterly", 2))
}

func TestPickSheet_NoSheets(t *testing.T) {
	_, err := PickSheet("Pick", nil, GridConfig{ColumnsPerRow: 1, RowsPerPage: 1})
	assert.Error(t, err)
}
