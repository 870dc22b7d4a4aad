package tetris

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilledRows(t *testing.T) {
	tests := []struct {
		name  string
		stack []Cell
		want  []int
	}{
		{name: "empty board"},
		{name: "partial row", stack: row(19, 0, 1, 2, 3, 4, 5, 6, 7, 8)},
		{name: "full row", stack: fullRow(10, 19), want: []int{19}},
		{
			name:  "rows are returned top to bottom",
			stack: slices.Concat(fullRow(10, 19), row(18, 0, 1, 2, 3, 4, 5, 6, 7, 8), fullRow(10, 17)),
			want:  []int{17, 19},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tt := NewTestTetris(nil, 0)
			fill(tt, tc.stack...)
			assert.Equal(t, tc.want, tt.board.FilledRows())
		})
	}
}

func TestDeleteRows(t *testing.T) {
	tests := []struct {
		name         string
		stack        []Cell
		rows         []int
		wantActive   []Cell
		wantInactive []Cell
	}{
		{
			name:         "no rows",
			stack:        []Cell{{0, 19}},
			wantActive:   []Cell{},
			wantInactive: []Cell{{0, 19}},
		},
		{
			name:         "blocks above fall again",
			stack:        slices.Concat(fullRow(10, 19), row(18, 0, 1), []Cell{{5, 17}}),
			rows:         []int{19},
			wantActive:   []Cell{{5, 17}, {0, 18}, {1, 18}},
			wantInactive: []Cell{},
		},
		{
			name:         "blocks below the lowest row stay settled",
			stack:        slices.Concat(fullRow(10, 18), []Cell{{0, 19}, {0, 17}}),
			rows:         []int{18},
			wantActive:   []Cell{{0, 17}},
			wantInactive: []Cell{{0, 19}},
		},
		{
			name:         "blocks between two deleted rows fall again",
			stack:        slices.Concat(fullRow(10, 17), fullRow(10, 19), []Cell{{0, 18}, {3, 16}}),
			rows:         []int{17, 19},
			wantActive:   []Cell{{3, 16}, {0, 18}},
			wantInactive: []Cell{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := NewRecordingRenderer()
			tt := NewTestTetris(r, 0)
			fill(tt, tc.stack...)

			tt.board.DeleteRows(tc.rows)
			assert.Equal(t, tc.wantActive, tt.ActiveCells())
			assert.Equal(t, tc.wantInactive, tt.InactiveCells())

			normal, _ := r.BoardCells(10)
			assert.ElementsMatch(t, slices.Concat(tc.wantActive, tc.wantInactive), normal)
		})
	}
}
