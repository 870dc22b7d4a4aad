package tetris

import "testing"

// spawned returns a game with catalog piece p falling from its spawn position.
func spawned(t *testing.T, r Renderer, p int) *Tetris {
	t.Helper()
	tt := NewTestTetris(r, p)
	tt.Tick()
	if tt.State() != ShapeMoving {
		t.Fatalf("expected %s after the first tick, got %s", ShapeMoving, tt.State())
	}
	return tt
}

// fill settles blocks on the given cells.
func fill(tt *Tetris, cells ...Cell) {
	for _, c := range cells {
		tt.board.settleBlock(tt.board.newBlock(c, Red))
	}
}

// activate adds falling blocks on the given cells.
func activate(tt *Tetris, cells ...Cell) {
	for _, c := range cells {
		tt.board.active = append(tt.board.active, tt.board.newBlock(c, Blue))
	}
}

func row(y int, xs ...int) []Cell {
	cells := make([]Cell, len(xs))
	for i, x := range xs {
		cells[i] = Cell{X: x, Y: y}
	}
	return cells
}

func fullRow(width, y int) []Cell {
	cells := make([]Cell, width)
	for x := range cells {
		cells[x] = Cell{X: x, Y: y}
	}
	return cells
}
