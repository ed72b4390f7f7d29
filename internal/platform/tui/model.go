package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// helpHeight is the number of terminal rows taken by the help line.
const helpHeight = 1

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	keys        KeyMap
	help        help.Model
	history     historyView
	showHistory bool
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-helpHeight)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		history:    newHistoryView(game.ID(), game.Title(), cfg.ScreenW, cfg.ScreenH),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop. The game must already be Reset by Run.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are queued in arrival order
// and applied on the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if key.Matches(msg, m.keys.History) {
		m.toggleHistory()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.recordAbandoned(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.update(msg)
		return m, cmd
	}

	m.inputFrame.Set(action)
	return m, nil
}

// toggleHistory shows or hides the session history. The game holds while
// the history is open.
func (m *Model) toggleHistory() {
	m.showHistory = !m.showHistory
	if !m.showHistory {
		return
	}
	if err := m.history.load(m.store); err != nil {
		m.logger.Warn("cannot load session history", "err", err)
	}
}

// handleResize adapts the screen buffer and the game to the new window.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-helpHeight))
	m.help.Width = msg.Width
	m.history.resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.screen.Width(), m.screen.Height())
	} else {
		m.game.Reset(m.gameConfig())
	}

	m.logger.Debug("resize", "width", msg.Width, "height", msg.Height)
	return m, nil
}

// handleTick runs one simulation frame with the queued actions.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.showHistory {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.recordAbandoned(storage.EndRestart)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, e := range result.Events {
		m.handleEvent(e)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// handleEvent logs notable game events and records finished runs.
func (m *Model) handleEvent(e core.Event) {
	switch e.Kind {
	case core.EventLinesCleared:
		m.logger.Debug("lines cleared", "lines", e.Lines, "score", e.Score)
	case core.EventGameOver:
		m.recordRun(storage.Run{
			GameID:    m.game.ID(),
			Score:     e.Score,
			Lines:     e.Lines,
			Pieces:    e.Pieces,
			EndReason: storage.EndGameOver,
		})
		m.logger.Info("game over", "game", m.game.ID(), "score", e.Score, "lines", e.Lines, "pieces", e.Pieces)
	case core.EventRestart:
		m.logger.Info("restart", "game", m.game.ID())
	}
}

// recordAbandoned stores the current run when it is left with a score.
func (m *Model) recordAbandoned(reason string) {
	if m.gameState.Score <= 0 {
		return
	}
	m.recordRun(storage.Run{
		GameID:    m.game.ID(),
		Score:     m.gameState.Score,
		Lines:     m.gameState.Lines,
		Pieces:    m.gameState.Pieces,
		EndReason: reason,
	})
	m.gameState = core.GameState{}
}

// recordRun saves a run to the session store. Failures only cost history.
func (m *Model) recordRun(r storage.Run) {
	if m.store == nil {
		return
	}
	if _, err := m.store.RecordRun(r); err != nil {
		m.logger.Warn("cannot record run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpLine := helpStyle.Render(m.help.View(m.keys))
	if m.showHistory {
		return m.history.view() + "\n" + helpLine
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpLine
}

// Run resets the game to the given config and runs the Bubble Tea program
// until the player quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)
	model.game.Reset(model.gameConfig())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// gameConfig returns the runtime config with the screen reduced by the help line.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	return cfg
}
