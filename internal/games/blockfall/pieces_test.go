package blockfall

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestRotationCounts(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{ShapeI, 2},
		{ShapeO, 1},
		{ShapeS, 2},
		{ShapeT, 4},
		{ShapeJ, 4},
		{ShapeL, 4},
		{ShapeZ, 2},
		{Shape(-1), 0},
		{Shape(ShapeCount), 0},
	}

	for _, tt := range tests {
		if got := tt.shape.RotationCount(); got != tt.want {
			t.Errorf("%v.RotationCount() = %d, expected %d", tt.shape, got, tt.want)
		}
	}
}

func TestOffsetsAreDistinct(t *testing.T) {
	for s := range Shape(ShapeCount) {
		for rot := range s.RotationCount() {
			offsets, ok := s.Offsets(rot)
			if !ok {
				t.Fatalf("%v.Offsets(%d) not ok", s, rot)
			}
			seen := make(map[core.Point]bool, 4)
			for _, off := range offsets {
				if seen[off] {
					t.Errorf("%v rotation %d repeats offset %v", s, rot, off)
				}
				seen[off] = true
			}
		}
	}
}

func TestOffsetsOutOfRange(t *testing.T) {
	if _, ok := ShapeO.Offsets(1); ok {
		t.Error("ShapeO.Offsets(1) should not be ok")
	}
	if _, ok := ShapeT.Offsets(-1); ok {
		t.Error("ShapeT.Offsets(-1) should not be ok")
	}
	if _, ok := Shape(9).Offsets(0); ok {
		t.Error("Shape(9).Offsets(0) should not be ok")
	}
}

func TestEveryRotationFitsAtSpawn(t *testing.T) {
	sizes := []struct {
		rows, cols int
	}{
		{DefaultRows, DefaultCols},
		{10, 10},
	}

	for _, size := range sizes {
		b := NewBoard(size.rows, size.cols)
		anchor := SpawnAnchor(size.rows, size.cols)
		for s := range Shape(ShapeCount) {
			for rot := range s.RotationCount() {
				if !b.IsValid(s, rot, anchor) {
					t.Errorf("%dx%d: %v rotation %d does not fit at spawn %v",
						size.rows, size.cols, s, rot, anchor)
				}
			}
		}
	}
}

func TestSpawnAnchor(t *testing.T) {
	if got := SpawnAnchor(24, 10); got != core.Pt(3, 21) {
		t.Errorf("SpawnAnchor(24, 10) = %v, expected (3, 21)", got)
	}
	if got := SpawnAnchor(10, 10); got != core.Pt(3, 7) {
		t.Errorf("SpawnAnchor(10, 10) = %v, expected (3, 7)", got)
	}
}

func TestShapeString(t *testing.T) {
	names := "IOSTJLZ"
	for s := range Shape(ShapeCount) {
		if got := s.String(); got != string(names[s]) {
			t.Errorf("Shape(%d).String() = %q, expected %q", int(s), got, string(names[s]))
		}
	}
}
