package blockfall

import (
	"math/rand/v2"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Piece is the player-controlled falling piece.
type Piece struct {
	Shape    Shape
	Rotation int        // Index into the shape's rotation states
	Anchor   core.Point // Board coordinate the offsets are relative to
	Color    RGB

	falling bool
}

// SpawnAnchor returns the spawn position for a board of the given size:
// horizontally centered, with three rows of headroom so that rotations
// reaching two rows above and one row below the anchor still fit.
func SpawnAnchor(rows, cols int) core.Point {
	return core.Pt(cols/2-2, rows-3)
}

// pickColor draws channel values from {0,1} until exactly one is on, so the
// result is always pure red, green or blue.
func pickColor(rng *rand.Rand) RGB {
	for {
		c := RGB{
			R: uint8(rng.IntN(2)),
			G: uint8(rng.IntN(2)),
			B: uint8(rng.IntN(2)),
		}
		if c.ActiveChannels() == 1 {
			return c
		}
	}
}

// Spawn replaces the piece with the next shape from the bag at the spawn
// position and marks it falling.
func (p *Piece) Spawn(bag *Bag, rng *rand.Rand, b *Board) {
	p.Shape = bag.Next()
	p.Rotation = 0
	p.Anchor = SpawnAnchor(b.Rows(), b.Cols())
	p.Color = pickColor(rng)
	p.falling = true
}

// Falling reports whether the piece is currently under player control.
func (p *Piece) Falling() bool {
	return p.falling
}

// Land ends player control of the piece; it has been settled into the board
// (or discarded by a game over).
func (p *Piece) Land() {
	p.falling = false
}

// Cells returns the four absolute board coordinates covered by the piece.
func (p *Piece) Cells() [4]core.Point {
	var cells [4]core.Point
	offsets, ok := p.Shape.Offsets(p.Rotation)
	if !ok {
		return cells
	}
	for i, off := range offsets {
		cells[i] = p.Anchor.Add(off)
	}
	return cells
}

// CanMove reports whether the piece could shift by (dx, dy) without committing.
func (p *Piece) CanMove(b *Board, dx, dy int) bool {
	return p.falling && b.IsValid(p.Shape, p.Rotation, p.Anchor.Add(core.Pt(dx, dy)))
}

// TryMove shifts the piece by (dx, dy) if the board accepts the new position.
// It returns false and leaves the piece unchanged otherwise, or when no piece
// is falling.
func (p *Piece) TryMove(b *Board, dx, dy int) bool {
	if !p.CanMove(b, dx, dy) {
		return false
	}
	p.Anchor = p.Anchor.Add(core.Pt(dx, dy))
	return true
}

// TryRotate advances to the next rotation state in place if it fits.
func (p *Piece) TryRotate(b *Board) bool {
	if !p.falling || !p.Shape.Valid() {
		return false
	}
	next := (p.Rotation + 1) % p.Shape.RotationCount()
	if !b.IsValid(p.Shape, next, p.Anchor) {
		return false
	}
	p.Rotation = next
	return true
}
