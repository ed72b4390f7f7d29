package blockfall

// Snapshot captures the complete game state for determinism testing and
// for read-only consumers such as renderers.
type Snapshot struct {
	Frame    uint64
	Ticks    uint64
	Phase    Phase
	Shape    Shape
	Rotation int
	AnchorX  int
	AnchorY  int
	Color    RGB
	Falling  bool
	Score    int
	Lines    int
	Pieces   int
	Games    int
	Best     int
	Filled   int
	Cells    []Cell // Row-major, row 0 first
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frame:    g.frame,
		Ticks:    g.ticks,
		Phase:    g.phase,
		Shape:    g.piece.Shape,
		Rotation: g.piece.Rotation,
		AnchorX:  g.piece.Anchor.X,
		AnchorY:  g.piece.Anchor.Y,
		Color:    g.piece.Color,
		Falling:  g.piece.Falling(),
		Score:    g.score,
		Lines:    g.lines,
		Pieces:   g.pieces,
		Games:    g.games,
		Best:     g.best,
	}
	if g.board != nil {
		s.Filled = g.board.FilledCount()
		s.Cells = append([]Cell(nil), g.board.cells...)
	}
	return s
}
