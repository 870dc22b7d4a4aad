package client

import (
	"cascade/tetris"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	red    = "\x1b[7m\x1b[31m[]\x1b[0m"
	yellow = "\x1b[7m\x1b[33m[]\x1b[0m"
)

func newTestRender(t *testing.T, noGhost bool) (*render, *strings.Builder) {
	t.Helper()
	cfg := tetris.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	w := &strings.Builder{}
	r, err := newRender(slog.Default(), cfg, &Options{Writer: w, NoGhost: noGhost})
	require.NoError(t, err)
	return r, w
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name    string
		noGhost bool
		draw    func(r *render)
		want    []string
	}{
		{
			name: "empty board",
			draw: func(*render) {},
			want: []string{
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
			},
		},
		{
			name: "blocks, ghost and panel",
			draw: func(r *render) {
				r.CreateCell(1, 0, tetris.Red, false)
				r.CreateCell(1, 3, tetris.Red, true)
				r.CreateCell(5, 2, tetris.Yellow, false)
			},
			want: []string{
				"|  " + red + "    |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |  " + yellow + strings.Repeat("  ", panelColumns-2),
				"|  []    |" + strings.Repeat("  ", panelColumns),
			},
		},
		{
			name: "ghost under a block",
			draw: func(r *render) {
				r.CreateCell(0, 3, tetris.Red, false)
				r.CreateCell(0, 3, tetris.Red, true)
			},
			want: []string{
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|" + red + "      |" + strings.Repeat("  ", panelColumns),
			},
		},
		{
			name:    "no ghost",
			noGhost: true,
			draw: func(r *render) {
				r.CreateCell(1, 3, tetris.Red, true)
			},
			want: []string{
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
			},
		},
		{
			name: "moved and deleted cells",
			draw: func(r *render) {
				h := r.CreateCell(0, 0, tetris.Red, false)
				r.MoveCell(h, 1, 2)
				r.DeleteCell(r.CreateCell(3, 3, tetris.Red, false))
				// off screen cells are skipped.
				r.CreateCell(0, 10, tetris.Red, false)
			},
			want: []string{
				"|        |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
				"|  " + red + "    |" + strings.Repeat("  ", panelColumns),
				"|        |" + strings.Repeat("  ", panelColumns),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, _ := newTestRender(t, tc.noGhost)
			tc.draw(r)
			f := r.frame()
			assert.Equal(t, tc.want, f.Rows)
			assert.Equal(t, "--------", f.Border)
		})
	}
}

func TestFlush(t *testing.T) {
	r, w := newTestRender(t, false)
	r.SetText(tetris.ScoreText, "Score: 250")
	r.SetText(tetris.MessageText, "Paused\nPress P to unpause")
	r.CreateCell(0, 0, tetris.Yellow, false)
	r.Flush()

	out := w.String()
	assert.True(t, strings.HasPrefix(out, resetPos+"  \033[1mCascade\033[0m"+clearLine+"\r\n"))
	assert.Contains(t, out, "+--------+"+clearLine+"\r\n")
	assert.Contains(t, out, "|"+yellow+"      |")
	assert.Contains(t, out, " Score: 250"+clearLine+"\r\n")
	assert.Contains(t, out, " Paused"+clearLine+"\r\n")
	assert.Contains(t, out, " Press P to unpause"+clearLine+"\r\n")

	// a cleared message still takes its lines, blank.
	w.Reset()
	r.SetText(tetris.MessageText, "")
	r.Flush()
	assert.NotContains(t, w.String(), "Paused")
	assert.True(t, strings.HasSuffix(w.String(), " "+clearLine+"\r\n "+clearLine+"\r\n"))
}

func TestRenderPlaysAGame(t *testing.T) {
	w := &strings.Builder{}
	r, err := newRender(slog.Default(), tetris.DefaultConfig(), &Options{Writer: w})
	require.NoError(t, err)
	tt, err := tetris.New(tetris.DefaultConfig(), r, &tetris.FixedDice{Rolls: []int{3}})
	require.NoError(t, err)
	tt.Tick()
	r.Flush()

	f := r.frame()
	require.Len(t, f.Rows, 20)
	// the falling I, drawn in its catalog color, and its ghost.
	require.Equal(t, tetris.Yellow, tetris.Catalog[3].Color)
	for y := range 4 {
		assert.Contains(t, f.Rows[y], "|        "+yellow)
	}
	for y := 16; y < 20; y++ {
		assert.True(t, strings.HasPrefix(f.Rows[y], "|        []"))
	}
	assert.Equal(t, "Score: 0", r.score)
}
