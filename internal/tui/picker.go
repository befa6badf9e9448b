package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits without choosing.
var ErrCancelled = errors.New("selection cancelled")

// GridConfig sizes the picker grid.
type GridConfig struct {
	ColumnsPerRow int
	RowsPerPage   int
}

// model lays sheet names out in a paged grid
type model struct {
	title  string
	sheets []string

	// Grid navigation
	page         int
	row          int
	col          int
	colsPerRow   int
	rowsPerPage  int
	itemsPerPage int

	chosen    string
	cancelled bool

	width int
}

func newModel(title string, sheets []string, cfg GridConfig) model {
	if cfg.ColumnsPerRow < 1 {
		cfg.ColumnsPerRow = 1
	}
	if cfg.RowsPerPage < 1 {
		cfg.RowsPerPage = 1
	}
	return model{
		title:        title,
		sheets:       sheets,
		colsPerRow:   cfg.ColumnsPerRow,
		rowsPerPage:  cfg.RowsPerPage,
		itemsPerPage: cfg.ColumnsPerRow * cfg.RowsPerPage,
		width:        80,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
		}

	case "down", "j":
		if m.row < m.maxRowForCurrentPage() {
			m.row++
		}
		m.adjustPosition()

	case "left", "h":
		if m.col > 0 {
			m.col--
		} else if m.page > 0 {
			// Previous page, rightmost column
			m.page--
			m.col = m.colsPerRow - 1
			m.adjustPosition()
		}

	case "right", "l":
		if m.col < m.maxColForCurrentRow() {
			m.col++
		} else if m.hasNextPage() {
			// Next page, leftmost column
			m.page++
			m.col = 0
			m.row = 0
		}

	case "enter":
		if idx := m.currentIndex(); idx < len(m.sheets) {
			m.chosen = m.sheets[idx]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) currentIndex() int {
	return m.page*m.itemsPerPage + m.row*m.colsPerRow + m.col
}

func (m model) maxRowForCurrentPage() int {
	remaining := len(m.sheets) - m.page*m.itemsPerPage
	if remaining <= 0 {
		return 0
	}
	rows := int(math.Ceil(float64(remaining) / float64(m.colsPerRow)))
	if rows > m.rowsPerPage {
		return m.rowsPerPage - 1
	}
	return rows - 1
}

func (m model) maxColForCurrentRow() int {
	start := m.page*m.itemsPerPage + m.row*m.colsPerRow
	end := start + m.colsPerRow
	if end > len(m.sheets) {
		end = len(m.sheets)
	}
	return (end - start) - 1
}

func (m model) hasNextPage() bool {
	return (m.page+1)*m.itemsPerPage < len(m.sheets)
}

// adjustPosition moves the cursor back onto the last sheet when it points
// past the end of the list.
func (m *model) adjustPosition() {
	if len(m.sheets) == 0 || m.currentIndex() < len(m.sheets) {
		return
	}
	last := len(m.sheets) - 1
	m.page = last / m.itemsPerPage
	remainder := last % m.itemsPerPage
	m.row = remainder / m.colsPerRow
	m.col = remainder % m.colsPerRow
}

func (m model) View() string {
	if m.chosen != "" || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Width(m.width).Render(m.title))
	b.WriteString("\n\n")

	totalPages := int(math.Ceil(float64(len(m.sheets)) / float64(m.itemsPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	b.WriteString(HelpStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, totalPages)))
	b.WriteString("\n\n")

	columnWidth := (m.width - 4) / m.colsPerRow
	if columnWidth < 10 {
		columnWidth = 10
	}

	for row := 0; row < m.rowsPerPage; row++ {
		var items []string
		for col := 0; col < m.colsPerRow; col++ {
			idx := m.page*m.itemsPerPage + row*m.colsPerRow + col
			if idx >= len(m.sheets) {
				break
			}

			text := truncate(m.sheets[idx], columnWidth-2)
			style := normalStyle
			if row == m.row && col == m.col {
				style = selectedStyle
			}
			items = append(items, style.Render(fmt.Sprintf("%-*s", columnWidth-2, text)))
		}
		if len(items) > 0 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items...))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑↓←→: navigate | Enter: select | q: cancel"))
	return b.String()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// PickSheet shows sheets in a grid and returns the one the user selects.
func PickSheet(title string, sheets []string, cfg GridConfig) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	p := tea.NewProgram(newModel(title, sheets, cfg), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running TUI: %w", err)
	}

	final := finalModel.(model)
	if final.chosen == "" {
		return "", ErrCancelled
	}
	return final.chosen, nil
}
