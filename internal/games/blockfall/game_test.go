package blockfall

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func hasEvent(events []core.Event, kind core.EventKind) (core.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return core.Event{}, false
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"blockfall", "blockfall_mini"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
		if _, ok := g.(registry.Configurable); !ok {
			t.Errorf("%q should be configurable", id)
		}
	}
}

func TestResetStartsFalling(t *testing.T) {
	g := newTestGame(t, New(), 1)

	if g.Phase() != PhaseFalling {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseFalling)
	}
	if g.Board().Rows() != 24 || g.Board().Cols() != 10 {
		t.Errorf("board = %dx%d, expected 24x10", g.Board().Rows(), g.Board().Cols())
	}
	p := g.Piece()
	if !p.Falling() || p.Anchor != SpawnAnchor(24, 10) || p.Rotation != 0 {
		t.Errorf("Piece() = %+v, expected fresh piece at spawn", p)
	}
	if p.Color.ActiveChannels() != 1 {
		t.Errorf("piece color %+v should have one active channel", p.Color)
	}
	snap := g.Snapshot()
	if snap.Score != 0 || snap.Pieces != 1 || snap.Filled != 0 {
		t.Errorf("Snapshot() = score %d pieces %d filled %d, expected 0/1/0", snap.Score, snap.Pieces, snap.Filled)
	}
}

func TestMiniBoard(t *testing.T) {
	g := newTestGame(t, NewMini(), 1)

	if g.Board().Rows() != 10 || g.Board().Cols() != 10 {
		t.Errorf("board = %dx%d, expected 10x10", g.Board().Rows(), g.Board().Cols())
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, New(), 12345)
	g2 := newTestGame(t, New(), 12345)

	pattern := []core.Action{
		core.ActionNone, core.ActionLeft, core.ActionNone, core.ActionRotate,
		core.ActionRight, core.ActionRight, core.ActionDown, core.ActionNone,
	}

	input := core.NewInputFrame()
	for i := range 5000 {
		input.Clear()
		if i%5 == 0 {
			input.Set(pattern[(i/5)%len(pattern)])
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Ticks == 0 {
		t.Error("gravity never ticked")
	}
}

func TestSettleThenSpawn(t *testing.T) {
	g := newTestGame(t, NewMini(), 7)

	// Every shape's first rotation rests on the floor with its anchor at row 0.
	for i := range 7 {
		events := g.Tick()
		if len(events) != 0 {
			t.Fatalf("tick %d: unexpected events %v", i, events)
		}
		if g.Phase() != PhaseFalling {
			t.Fatalf("tick %d: Phase() = %v, expected falling", i, g.Phase())
		}
	}
	if g.Piece().Anchor.Y != 0 {
		t.Fatalf("anchor row = %d, expected 0", g.Piece().Anchor.Y)
	}

	events := g.Tick()
	if _, ok := hasEvent(events, core.EventPieceLocked); !ok {
		t.Errorf("settling tick events = %v, expected piece_locked", events)
	}
	if _, ok := hasEvent(events, core.EventSpawn); !ok {
		t.Errorf("settling tick events = %v, expected spawn", events)
	}
	if g.Phase() != PhaseFalling {
		t.Errorf("Phase() = %v, expected falling after spawn", g.Phase())
	}
	if got := g.Board().FilledCount(); got != 4 {
		t.Errorf("FilledCount() = %d, expected 4", got)
	}
	if got := g.Snapshot().Pieces; got != 2 {
		t.Errorf("Pieces = %d, expected 2", got)
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d, expected 0", g.State().Score)
	}
}

func TestLineClearScores(t *testing.T) {
	g := newTestGame(t, NewMini(), 1)
	fillRow(g.board, 0, 0, 1)
	fillRow(g.board, 1, 0, 1)
	fill(g.board, core.Pt(5, 2))
	g.piece = Piece{Shape: ShapeO, Anchor: core.Pt(0, 0), Color: red, falling: true}

	events := g.Tick()

	e, ok := hasEvent(events, core.EventLinesCleared)
	if !ok {
		t.Fatalf("events = %v, expected lines_cleared", events)
	}
	if e.Lines != 2 || e.Score != 200 {
		t.Errorf("lines_cleared event = %+v, expected 2 lines for 200", e)
	}
	if g.State().Score != 200 {
		t.Errorf("Score = %d, expected 200", g.State().Score)
	}
	snap := g.Snapshot()
	if snap.Lines != 2 || snap.Best != 200 {
		t.Errorf("Lines = %d Best = %d, expected 2 and 200", snap.Lines, snap.Best)
	}
	if !g.Board().Cell(5, 0).Filled || g.Board().FilledCount() != 1 {
		t.Error("leftover cell should drop to row 0")
	}
}

func TestLineClearUsesConfiguredPoints(t *testing.T) {
	g := NewMini()
	cfg := config.DefaultBlockfallConfig()
	cfg.Scoring.PointsPerLine = 40
	if err := g.Configure(cfg); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	newTestGame(t, g, 1)

	fillRow(g.board, 0, 4, 5)
	g.piece = Piece{Shape: ShapeO, Anchor: core.Pt(4, 0), Color: red, falling: true}
	g.Tick()

	if g.State().Score != 40 {
		t.Errorf("Score = %d, expected 40", g.State().Score)
	}
}

func TestGameOverSequence(t *testing.T) {
	g := newTestGame(t, New(), 9)
	for y := range g.board.Rows() {
		fillRow(g.board, y, 0)
	}
	g.score = 300
	g.lines = 3

	// Spawned piece already overlaps the stack.
	events := g.Tick()
	e, ok := hasEvent(events, core.EventGameOver)
	if !ok {
		t.Fatalf("events = %v, expected game_over", events)
	}
	if e.Score != 300 || e.Lines != 3 || e.Pieces != 1 {
		t.Errorf("game_over event = %+v, expected score 300 lines 3 pieces 1", e)
	}
	if _, ok := hasEvent(events, core.EventSpawn); ok {
		t.Error("game over tick should not spawn")
	}
	if g.Phase() != PhaseSuppressSpawn {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseSuppressSpawn)
	}
	if !g.Board().IsEmpty() {
		t.Error("board should be reset after game over")
	}
	if g.State().Score != 0 || !g.State().GameOver {
		t.Errorf("State() = %+v, expected zero score and game over", g.State())
	}
	if g.Apply(core.ActionLeft) || g.Apply(core.ActionRotate) {
		t.Error("intents should be rejected with no falling piece")
	}

	// Suppressed tick: nothing spawns.
	if events := g.Tick(); len(events) != 0 {
		t.Errorf("suppressed tick events = %v, expected none", events)
	}
	if g.Phase() != PhaseSettled {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseSettled)
	}
	if g.State().GameOver {
		t.Error("GameOver should clear once the suppressed tick has passed")
	}

	events = g.Tick()
	if _, ok := hasEvent(events, core.EventSpawn); !ok {
		t.Errorf("events = %v, expected spawn", events)
	}
	if g.Phase() != PhaseFalling {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseFalling)
	}
	snap := g.Snapshot()
	if snap.Games != 1 || snap.Pieces != 1 {
		t.Errorf("Games = %d Pieces = %d, expected 1 and 1", snap.Games, snap.Pieces)
	}
}

func TestGameOverReachedWithoutInput(t *testing.T) {
	g := newTestGame(t, NewMini(), 2024)

	for range 2000 {
		if _, ok := hasEvent(g.Tick(), core.EventGameOver); ok {
			return
		}
	}
	t.Error("stacking pieces in the middle never ended the game")
}

func TestGravityFrames(t *testing.T) {
	tests := []struct {
		period time.Duration
		rate   int
		want   int
	}{
		{300 * time.Millisecond, 60, 18},
		{time.Second, 60, 60},
		{300 * time.Millisecond, 30, 9},
		{time.Millisecond, 60, 1},
		{50 * time.Millisecond, 10, 1},
	}

	for _, tt := range tests {
		if got := gravityFrames(tt.period, tt.rate); got != tt.want {
			t.Errorf("gravityFrames(%v, %d) = %d, expected %d", tt.period, tt.rate, got, tt.want)
		}
	}
}

func TestStepGravity(t *testing.T) {
	g := newTestGame(t, New(), 5)
	startY := g.Piece().Anchor.Y
	input := core.NewInputFrame()

	for range 17 {
		g.Step(input)
	}
	if g.Snapshot().Ticks != 0 || g.Piece().Anchor.Y != startY {
		t.Fatal("gravity ticked before its period elapsed")
	}

	g.Step(input)
	if g.Snapshot().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", g.Snapshot().Ticks)
	}
	if g.Piece().Anchor.Y != startY-1 {
		t.Errorf("anchor row = %d, expected %d", g.Piece().Anchor.Y, startY-1)
	}
}

func TestStepAppliesIntentsInOrder(t *testing.T) {
	g := newTestGame(t, New(), 5)
	startX := g.Piece().Anchor.X

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	input.Set(core.ActionRight)
	g.Step(input)
	if g.Piece().Anchor.X != startX {
		t.Errorf("left+right moved anchor to %d, expected %d", g.Piece().Anchor.X, startX)
	}

	input.Clear()
	input.Set(core.ActionLeft)
	input.Set(core.ActionLeft)
	g.Step(input)
	if g.Piece().Anchor.X != startX-2 {
		t.Errorf("two lefts moved anchor to %d, expected %d", g.Piece().Anchor.X, startX-2)
	}

	startY := g.Piece().Anchor.Y
	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)
	if g.Piece().Anchor.Y != startY-1 {
		t.Errorf("soft drop moved anchor to row %d, expected %d", g.Piece().Anchor.Y, startY-1)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, New(), 5)
	input := core.NewInputFrame()

	input.Set(core.ActionPause)
	g.Step(input)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	before := g.Snapshot()
	input.Clear()
	input.Set(core.ActionLeft)
	for range 100 {
		g.Step(input)
	}
	after := g.Snapshot()
	if after.Ticks != before.Ticks || after.AnchorX != before.AnchorX || after.AnchorY != before.AnchorY {
		t.Error("paused game should not move")
	}

	input.Clear()
	input.Set(core.ActionPause)
	g.Step(input)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, NewMini(), 5)
	fill(g.board, core.Pt(0, 0), core.Pt(9, 0))
	g.score = 500

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	result := g.Step(input)

	if _, ok := hasEvent(result.Events, core.EventRestart); !ok {
		t.Errorf("events = %v, expected restart", result.Events)
	}
	if _, ok := hasEvent(result.Events, core.EventSpawn); !ok {
		t.Errorf("events = %v, expected spawn", result.Events)
	}
	if result.State.Score != 0 {
		t.Errorf("Score = %d, expected 0", result.State.Score)
	}
	if !g.Board().IsEmpty() {
		t.Error("restart should empty the board")
	}
	if g.Phase() != PhaseFalling || g.Snapshot().Pieces != 1 {
		t.Error("restart should spawn a fresh piece")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 30, 12
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("game should hold while the screen is too small")
	}

	input := core.NewInputFrame()
	for range 100 {
		g.Step(input)
	}
	if g.Snapshot().Ticks != 0 {
		t.Error("gravity should not run while the screen is too small")
	}

	screen := core.NewScreen(30, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("render should show the too small notice")
	}

	g.Resize(80, 30)
	if g.State().Paused {
		t.Error("game should resume after resize")
	}
	if g.Snapshot().Pieces != 1 {
		t.Error("resize should not restart the run")
	}
}

func TestConfigure(t *testing.T) {
	g := NewMini()
	cfg := config.DefaultBlockfallConfig()
	cfg.Board.Rows = 30

	if err := g.Configure(cfg); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	if got := g.Settings().Board.Rows; got != 10 {
		t.Errorf("mini rows = %d, expected variant override 10", got)
	}

	cfg.Timing.GravityMS = 0
	err := g.Configure(cfg)
	if !errors.Is(err, config.ErrInvalidTiming) {
		t.Errorf("Configure() error = %v, expected %v", err, config.ErrInvalidTiming)
	}
	if g.Settings().Timing.GravityMS != 300 {
		t.Error("rejected config should not be applied")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 1)
	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Blockfall", "Score", "Lines", "Best", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused render should show the overlay")
	}
}

func TestTerminalColor(t *testing.T) {
	tests := []struct {
		c    RGB
		want core.Color
	}{
		{RGB{R: 1}, core.ColorBrightRed},
		{RGB{G: 1}, core.ColorBrightGreen},
		{RGB{B: 1}, core.ColorBrightBlue},
		{Background, core.ColorBrightWhite},
		{RGB{R: 2}, core.ColorDefault},
	}

	for _, tt := range tests {
		if got := TerminalColor(tt.c); got != tt.want {
			t.Errorf("TerminalColor(%+v) = %v, expected %v", tt.c, got, tt.want)
		}
	}
}
