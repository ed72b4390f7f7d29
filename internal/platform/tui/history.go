package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/storage"
)

// History layout constants
const (
	historyMaxRuns   = 50 // Max runs to load
	historyMinHeight = 3  // Smallest table body
)

// historyView lists the runs recorded this session, best first.
type historyView struct {
	gameID string
	title  string
	runs   []storage.Run
	stats  storage.Stats
	table  table.Model
	width  int
	height int
}

func newHistoryView(gameID, title string, width, height int) historyView {
	h := historyView{
		gameID: gameID,
		title:  title,
		width:  width,
		height: height,
	}
	h.table = h.createTable()
	return h
}

// createTable creates a table sized for the current window.
func (h *historyView) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 7},
		{Title: "Pieces", Width: 8},
		{Title: "Ended", Width: 10},
		{Title: "Time", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(historyMinHeight, h.height-8)), // Title, stats, borders, help
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

// load refreshes runs and stats from the store. A nil store shows nothing.
func (h *historyView) load(store *storage.Store) error {
	h.runs = nil
	h.stats = storage.Stats{}
	defer h.updateTableRows()

	if store == nil {
		return nil
	}

	runs, err := store.TopRuns(h.gameID, historyMaxRuns)
	if err != nil {
		return err
	}
	stats, err := store.Stats(h.gameID)
	if err != nil {
		return err
	}
	h.runs = runs
	h.stats = stats
	return nil
}

// updateTableRows fills the table with the loaded runs.
func (h *historyView) updateTableRows() {
	rows := make([]table.Row, len(h.runs))
	for i, r := range h.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Pieces),
			strings.ReplaceAll(r.EndReason, "_", " "),
			r.CreatedAt.Local().Format("15:04:05"),
		}
	}
	h.table.SetRows(rows)
	h.table.GotoTop()
}

// resize rebuilds the table for a new window size.
func (h *historyView) resize(width, height int) {
	h.width = width
	h.height = height
	h.table = h.createTable()
	h.updateTableRows()
}

// update passes scrolling keys to the table.
func (h historyView) update(msg tea.Msg) (historyView, tea.Cmd) {
	var cmd tea.Cmd
	h.table, cmd = h.table.Update(msg)
	return h, cmd
}

// view renders the history screen without the help line.
func (h historyView) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("SESSION HISTORY - %s", h.title)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("runs %d  best %d  lines %d  avg %.0f",
		h.stats.Runs, h.stats.Best, h.stats.TotalLines, h.stats.AvgScore)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(h.runs) == 0 {
		b.WriteString(tableStyle.Render(dimStyle.Padding(1, 2).Render("No runs finished yet this session.")))
	} else {
		b.WriteString(tableStyle.Render(h.table.View()))
	}

	return lipgloss.Place(h.width, max(0, h.height-1), lipgloss.Center, lipgloss.Top, b.String())
}
