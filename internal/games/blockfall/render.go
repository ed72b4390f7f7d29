package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	cellWidth    = 2  // Terminal columns per board cell
	sidebarWidth = 18 // Score panel to the right of the board
	sidebarGap   = 2
)

// palette maps an on/off channel triple to the terminal palette.
var palette = map[RGB]core.Color{
	{R: 1, G: 0, B: 0}: core.ColorBrightRed,
	{R: 0, G: 1, B: 0}: core.ColorBrightGreen,
	{R: 0, G: 0, B: 1}: core.ColorBrightBlue,
	{R: 1, G: 1, B: 0}: core.ColorBrightYellow,
	{R: 1, G: 0, B: 1}: core.ColorBrightMagenta,
	{R: 0, G: 1, B: 1}: core.ColorBrightCyan,
	{R: 1, G: 1, B: 1}: core.ColorBrightWhite,
	{R: 0, G: 0, B: 0}: core.ColorGray,
}

// TerminalColor returns the terminal color used to draw c.
func TerminalColor(c RGB) core.Color {
	if tc, ok := palette[c]; ok {
		return tc
	}
	return core.ColorDefault
}

// boardSize returns the outer size of the boxed board on screen.
func (g *Game) boardSize() (w, h int) {
	rows, cols := g.settings.Board.Rows, g.settings.Board.Cols
	return cols*cellWidth + 2, rows + 2
}

// requiredSize returns the minimum screen size for board plus sidebar.
func (g *Game) requiredSize() (w, h int) {
	bw, bh := g.boardSize()
	return bw + sidebarGap + sidebarWidth, bh
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW, _ := g.requiredSize()
	bw, bh := g.boardSize()
	box := core.NewRect((dst.Width()-totalW)/2, (dst.Height()-bh)/2, bw, bh)

	dst.DrawBox(box)
	inner := box.Inset(1)
	g.renderCells(dst, inner)
	if g.piece.Falling() {
		g.renderPiece(dst, inner)
	}
	g.renderSidebar(dst, box.Right()+sidebarGap, box.Y)

	if g.paused {
		g.drawOverlay(dst, box, "PAUSED", "Press P to resume")
	}
}

// screenPos converts a board coordinate to the screen position of its left
// column inside the box interior. Board row 0 is drawn at the bottom.
func screenPos(inner core.Rect, p core.Point) (int, int) {
	return inner.X + p.X*cellWidth, inner.Bottom() - 1 - p.Y
}

func (g *Game) renderCells(dst *core.Screen, inner core.Rect) {
	for y := range g.board.Rows() {
		for x := range g.board.Cols() {
			sx, sy := screenPos(inner, core.Pt(x, y))
			cell := g.board.Cell(x, y)
			if cell.Filled {
				drawBlock(dst, sx, sy, cell.Color)
				continue
			}
			dst.SetCell(sx+1, sy, '·', core.ColorGray)
		}
	}
}

func (g *Game) renderPiece(dst *core.Screen, inner core.Rect) {
	for _, c := range g.piece.Cells() {
		if !g.board.contains(c) {
			continue
		}
		sx, sy := screenPos(inner, c)
		drawBlock(dst, sx, sy, g.piece.Color)
	}
}

func drawBlock(dst *core.Screen, sx, sy int, c RGB) {
	tc := TerminalColor(c)
	dst.SetCell(sx, sy, '█', tc)
	dst.SetCell(sx+1, sy, '█', tc)
}

// renderSidebar draws the title and counters to the right of the board.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawColorText(x, y, g.Title(), core.ColorBrightCyan)
	dst.DrawHLine(x, y+1, sidebarWidth, '─')

	lines := []string{
		fmt.Sprintf("Score  %d", g.score),
		fmt.Sprintf("Lines  %d", g.lines),
		fmt.Sprintf("Pieces %d", g.pieces),
		"",
		fmt.Sprintf("Best   %d", g.best),
		fmt.Sprintf("Games  %d", g.games),
	}
	for i, line := range lines {
		dst.DrawText(x, y+2+i, line)
	}

	if g.phase == PhaseSuppressSpawn || (g.phase == PhaseSettled && g.board.IsEmpty()) {
		dst.DrawColorText(x, y+2+len(lines)+1, "Game over!", core.ColorBrightRed)
		dst.DrawText(x, y+2+len(lines)+2, "Score reset.")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.requiredSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, g.screenW, g.screenH))
}

// drawOverlay draws a boxed message centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	centerX := board.X + board.W/2
	centerY := board.Y + board.H/2
	r := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, r.Y+1+i, line)
	}
}
