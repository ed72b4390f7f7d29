package blockfall

import "github.com/vovakirdan/blockfall/internal/core"

// Shape identifies one of the seven piece definitions.
type Shape int

// Shape ids. The numbering is part of the game's behavior (the bag deals ids
// 0..6), so it must not be reordered.
const (
	ShapeI Shape = iota
	ShapeO
	ShapeS
	ShapeT
	ShapeJ
	ShapeL
	ShapeZ
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

// Rotation is one orientation of a shape: four cell offsets from the anchor.
// Y grows upward, so an offset of (0, 2) is two rows above the anchor.
type Rotation [4]core.Point

// catalog holds every rotation state of every shape, indexed by Shape.
var catalog = [ShapeCount][]Rotation{
	ShapeI: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
		{{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	},
	ShapeO: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	},
	ShapeS: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 2}},
	},
	ShapeT: {
		{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}},
		{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}},
		{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	},
	ShapeJ: {
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
		{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}},
		{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 0}},
		{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 2}},
	},
	ShapeL: {
		{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}},
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}},
	},
	ShapeZ: {
		{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	},
}

// Valid reports whether s is one of the seven shape ids.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// RotationCount returns how many rotation states the shape has (1, 2 or 4).
// Invalid shapes have none.
func (s Shape) RotationCount() int {
	if !s.Valid() {
		return 0
	}
	return len(catalog[s])
}

// Offsets returns the four offsets of rotation state rot.
// ok is false when the shape or rotation index does not exist.
func (s Shape) Offsets(rot int) (r Rotation, ok bool) {
	if rot < 0 || rot >= s.RotationCount() {
		return Rotation{}, false
	}
	return catalog[s][rot], true
}

// String returns the conventional letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeS:
		return "S"
	case ShapeT:
		return "T"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeZ:
		return "Z"
	default:
		return "?"
	}
}
