package blockfall

import "github.com/vovakirdan/blockfall/internal/core"

// Default board dimensions.
const (
	DefaultRows = 24
	DefaultCols = 10
)

// RGB is a cell color with each channel either 0 (off) or 1 (on).
type RGB struct {
	R, G, B uint8
}

// Background is the color of an empty cell.
var Background = RGB{R: 1, G: 1, B: 1}

// ActiveChannels returns how many channels are switched on.
func (c RGB) ActiveChannels() int {
	n := 0
	for _, ch := range [3]uint8{c.R, c.G, c.B} {
		if ch != 0 {
			n++
		}
	}
	return n
}

// Cell is one board position.
type Cell struct {
	Color  RGB
	Filled bool
}

var emptyCell = Cell{Color: Background}

// SettleResult reports the outcome of Board.Settle.
type SettleResult int

const (
	SettleOK SettleResult = iota
	SettleGameOver
)

// String returns a human-readable name for the result.
func (r SettleResult) String() string {
	if r == SettleGameOver {
		return "game_over"
	}
	return "ok"
}

// Board is the grid of settled cells and the only authority on occupancy.
// Row 0 is the bottom row. Cells are stored row-major in a single slice.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

// NewBoard creates an empty board. Non-positive dimensions fall back to the
// defaults.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	b.Reset()
	return b
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// contains reports whether p lies inside [0,cols)×[0,rows).
func (b *Board) contains(p core.Point) bool {
	return p.X >= 0 && p.X < b.cols && p.Y >= 0 && p.Y < b.rows
}

func (b *Board) index(x, y int) int {
	return y*b.cols + x
}

// Cell returns a copy of the cell at (x, y), or an empty cell out of range.
func (b *Board) Cell(x, y int) Cell {
	if !b.contains(core.Pt(x, y)) {
		return emptyCell
	}
	return b.cells[b.index(x, y)]
}

// Reset empties every cell.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = emptyCell
	}
}

// IsValid reports whether the given rotation of shape fits at anchor: all
// four cells must be inside the board and empty.
func (b *Board) IsValid(shape Shape, rot int, anchor core.Point) bool {
	offsets, ok := shape.Offsets(rot)
	if !ok {
		return false
	}
	for _, off := range offsets {
		p := anchor.Add(off)
		if !b.contains(p) {
			return false
		}
		if b.cells[b.index(p.X, p.Y)].Filled {
			return false
		}
	}
	return true
}

// Settle writes the piece's cells into the board.
//
// A cell below row 0 ends the game, as does a cell outside the board or on top
// of a filled cell; the latter only happens when a freshly spawned piece
// already overlaps the stack. On game over the board is reset and nothing of
// the piece remains.
func (b *Board) Settle(p *Piece) SettleResult {
	gameOver := false
	for _, c := range p.Cells() {
		if c.Y < 0 || !b.contains(c) || b.cells[b.index(c.X, c.Y)].Filled {
			gameOver = true
			continue
		}
		b.cells[b.index(c.X, c.Y)] = Cell{Color: p.Color, Filled: true}
	}

	if gameOver {
		b.Reset()
		return SettleGameOver
	}
	return SettleOK
}

// rowFull reports whether every column of row y is filled.
func (b *Board) rowFull(y int) bool {
	row := b.cells[b.index(0, y) : b.index(0, y)+b.cols]
	for _, c := range row {
		if !c.Filled {
			return false
		}
	}
	return true
}

// removeRow shifts every row above y down by one and empties the top row.
func (b *Board) removeRow(y int) {
	copy(b.cells[b.index(0, y):], b.cells[b.index(0, y+1):])
	top := b.cells[b.index(0, b.rows-1):]
	for i := range top {
		top[i] = emptyCell
	}
}

// ClearFullLines removes every full row and returns how many were removed.
// After a removal the same row index is examined again, since the row above
// has just moved into it.
func (b *Board) ClearFullLines() int {
	cleared := 0
	for y := 0; y < b.rows; {
		if b.rowFull(y) {
			b.removeRow(y)
			cleared++
			continue
		}
		y++
	}
	return cleared
}

// IsEmpty reports whether no cell is filled.
func (b *Board) IsEmpty() bool {
	for _, c := range b.cells {
		if c.Filled {
			return false
		}
	}
	return true
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled {
			n++
		}
	}
	return n
}
