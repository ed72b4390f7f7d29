// Package blockfall implements the falling-block puzzle game: a fixed grid
// receives pieces dealt from a 7-bag, which fall on a constant gravity timer,
// settle into the stack and clear full rows for a flat bonus per line.
package blockfall

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// colorStream decorrelates the color generator from the bag generator.
const colorStream = 0xc01d_0000_0000_00c0

// Phase is the state of the tick state machine between gravity ticks.
type Phase int

const (
	// PhaseFalling: a piece is under player control.
	PhaseFalling Phase = iota
	// PhaseSettled: no piece is falling; the next tick spawns one.
	PhaseSettled
	// PhaseSuppressSpawn: a game over just reset the board; the next tick
	// spawns nothing.
	PhaseSuppressSpawn
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseSettled:
		return "settled"
	case PhaseSuppressSpawn:
		return "suppress_spawn"
	default:
		return "unknown"
	}
}

// variant describes a registered flavor of the game.
type variant struct {
	id    string
	title string
	rows  int // Board override, 0 keeps the configured size
	cols  int
}

var (
	variantClassic = variant{id: "blockfall", title: "Blockfall"}
	variantMini    = variant{id: "blockfall_mini", title: "Blockfall (Mini)", rows: 10, cols: 10}
)

// apply returns cfg with the variant's overrides.
func (v variant) apply(cfg config.BlockfallConfig) config.BlockfallConfig {
	if v.rows > 0 {
		cfg.Board.Rows = v.rows
	}
	if v.cols > 0 {
		cfg.Board.Cols = v.cols
	}
	return cfg
}

// Game owns the whole simulation state. All mutation goes through Step,
// Tick or Apply, which the host must call from a single goroutine.
type Game struct {
	variant  variant
	settings config.BlockfallConfig

	board *Board
	bag   *Bag
	rng   *rand.Rand // Piece colors
	piece Piece
	phase Phase

	// Current run; zeroed by a game over or restart
	score  int
	lines  int
	pieces int

	// Since Reset
	games int // Game overs
	best  int // Highest score reached

	frame         uint64
	ticks         uint64 // Gravity ticks
	gravityFrames int    // Frames per gravity tick
	frameCounter  int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool

	events []core.Event
}

// New creates a Blockfall game with the configured board (24x10 by default).
func New() *Game {
	return newGame(variantClassic)
}

// NewMini creates a Blockfall game on a 10x10 board.
func NewMini() *Game {
	return newGame(variantMini)
}

func newGame(v variant) *Game {
	return &Game{
		variant:  v,
		settings: v.apply(config.DefaultBlockfallConfig()),
	}
}

func init() {
	registry.Register(variantClassic.id, func() registry.Game {
		return New()
	})
	registry.Register(variantMini.id, func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.title
}

// Configure applies a loaded configuration. Variant board overrides win over
// the configured size. Takes effect on the next Reset.
func (g *Game) Configure(cfg config.BlockfallConfig) error {
	cfg = g.variant.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("blockfall: %w", err)
	}
	g.settings = cfg
	return nil
}

// Settings returns the configuration in effect.
func (g *Game) Settings() config.BlockfallConfig {
	return g.settings
}

// Reset initializes the game: fresh board, bag and counters, and the first
// piece already falling.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewPCG(uint64(cfg.Seed), colorStream))
	g.bag = NewBag(cfg.Seed)
	g.board = NewBoard(g.settings.Board.Rows, g.settings.Board.Cols)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.gravityFrames = gravityFrames(g.settings.Gravity(), tickRate)

	g.frame = 0
	g.ticks = 0
	g.frameCounter = 0
	g.games = 0
	g.best = 0
	g.paused = false
	g.events = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.newRun()
}

// gravityFrames converts the gravity period into a whole number of frames.
func gravityFrames(period time.Duration, tickRate int) int {
	frames := (period*time.Duration(tickRate) + time.Second/2) / time.Second
	return max(1, int(frames))
}

// Resize updates the screen dimensions without touching the simulation.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// newRun empties the board, zeroes the run counters and spawns a piece.
func (g *Game) newRun() {
	g.board.Reset()
	g.score = 0
	g.lines = 0
	g.pieces = 0
	g.piece.Land()
	g.spawn()
}

// spawn deals the next piece and makes it the falling piece.
func (g *Game) spawn() {
	g.piece.Spawn(g.bag, g.rng, g.board)
	g.pieces++
	g.phase = PhaseFalling
	g.emit(core.Event{Kind: core.EventSpawn, Score: g.score})
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// Step advances the game by one platform frame: control actions first, then
// movement intents in arrival order, then gravity when its period elapses.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++
	g.events = nil

	if in.Has(core.ActionRestart) {
		g.newRun()
		g.frameCounter = 0
		g.paused = false
		g.emit(core.Event{Kind: core.EventRestart})
		return core.StepResult{State: g.State(), Events: g.events}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State(), Events: g.events}
	}

	for _, a := range in.Actions() {
		g.Apply(a)
	}

	g.frameCounter++
	if g.frameCounter >= g.gravityFrames {
		g.frameCounter = 0
		g.tick()
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// Apply performs one movement intent on the falling piece and reports
// whether it was accepted. Actions other than movement are ignored here.
func (g *Game) Apply(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		return g.piece.TryMove(g.board, -1, 0)
	case core.ActionRight:
		return g.piece.TryMove(g.board, 1, 0)
	case core.ActionDown:
		return g.piece.TryMove(g.board, 0, -1)
	case core.ActionRotate:
		return g.piece.TryRotate(g.board)
	default:
		return false
	}
}

// Tick runs one gravity tick immediately and returns the events it produced.
// Hosts that drive gravity from their own timer call this instead of Step.
func (g *Game) Tick() []core.Event {
	g.events = nil
	g.tick()
	return g.events
}

// tick advances gravity by one row, or settles, clears, and spawns.
func (g *Game) tick() {
	g.ticks++

	if g.phase == PhaseFalling && g.piece.TryMove(g.board, 0, -1) {
		return
	}

	if g.phase == PhaseFalling && g.settle() == SettleGameOver {
		return
	}

	// An empty board cannot hold a full row; skip the scan right after a reset.
	if !g.board.IsEmpty() {
		if n := g.board.ClearFullLines(); n > 0 {
			g.lines += n
			g.score += n * g.settings.Scoring.PointsPerLine
			g.best = max(g.best, g.score)
			g.emit(core.Event{Kind: core.EventLinesCleared, Score: g.score, Lines: n})
		}
	}

	if g.phase == PhaseSuppressSpawn {
		g.phase = PhaseSettled
		return
	}
	g.spawn()
}

// settle locks the falling piece into the board. On game over the board has
// already been reset; the run counters are zeroed and the next tick spawns
// nothing.
func (g *Game) settle() SettleResult {
	result := g.board.Settle(&g.piece)
	g.piece.Land()

	if result == SettleGameOver {
		g.games++
		g.emit(core.Event{
			Kind:   core.EventGameOver,
			Score:  g.score,
			Lines:  g.lines,
			Pieces: g.pieces,
		})
		g.score = 0
		g.lines = 0
		g.pieces = 0
		g.phase = PhaseSuppressSpawn
		return result
	}

	g.phase = PhaseSettled
	g.emit(core.Event{Kind: core.EventPieceLocked, Score: g.score})
	return result
}

// checkScreenSize checks if the screen is large enough for board and sidebar.
func (g *Game) checkScreenSize() {
	w, h := g.requiredSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// State returns the current game state. GameOver holds only between the
// game-over reset and the next gravity tick.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lines:    g.lines,
		Pieces:   g.pieces,
		GameOver: g.phase == PhaseSuppressSpawn,
		Paused:   g.paused || g.tooSmall,
	}
}

// Board returns the game's board for read-only inspection.
func (g *Game) Board() *Board {
	return g.board
}

// Piece returns a copy of the falling piece.
func (g *Game) Piece() Piece {
	return g.piece
}

// Phase returns the current tick phase.
func (g *Game) Phase() Phase {
	return g.phase
}
