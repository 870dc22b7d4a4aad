package terminal

import (
	"cascade/tetris"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGame struct {
	actions chan tetris.Action
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func newMockGame() *mockGame {
	return &mockGame{
		actions: make(chan tetris.Action, 10),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (m *mockGame) Run(ctx context.Context) {
	defer close(m.doneCh)
	select {
	case <-ctx.Done():
	case <-m.stopCh:
	}
}
func (m *mockGame) Action(a tetris.Action) { m.actions <- a }
func (m *mockGame) Stop()                  { m.once.Do(func() { close(m.stopCh) }) }
func (m *mockGame) Done() <-chan struct{}  { return m.doneCh }

func newTestTerminal(t *testing.T, noGhost bool) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	term, err := New(tetris.DefaultConfig(), &Options{
		Logger:  slog.New(slog.DiscardHandler),
		NoGhost: noGhost,
		Screen:  s,
	})
	require.NoError(t, err)
	s.SetSize(80, 30)
	t.Cleanup(term.Close)
	return term, s
}

func contentAt(s tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func textAt(s tcell.SimulationScreen, x, y, n int) string {
	var out []rune
	for i := range n {
		r, _ := contentAt(s, x+i, y)
		out = append(out, r)
	}
	return string(out)
}

func TestKeymap(t *testing.T) {
	tests := []struct {
		key    tcell.Key
		r      rune
		action tetris.Action
		ok     bool
	}{
		{key: tcell.KeyRight, action: tetris.MoveRight, ok: true},
		{key: tcell.KeyRune, r: 'd', action: tetris.MoveRight, ok: true},
		{key: tcell.KeyLeft, action: tetris.MoveLeft, ok: true},
		{key: tcell.KeyRune, r: 'a', action: tetris.MoveLeft, ok: true},
		{key: tcell.KeyUp, action: tetris.RotateCW, ok: true},
		{key: tcell.KeyRune, r: 'w', action: tetris.RotateCW, ok: true},
		{key: tcell.KeyDown, action: tetris.SoftDrop, ok: true},
		{key: tcell.KeyRune, r: 's', action: tetris.SoftDrop, ok: true},
		{key: tcell.KeyRune, r: ' ', action: tetris.HardDrop, ok: true},
		{key: tcell.KeyRune, r: 'p', action: tetris.TogglePause, ok: true},
		{key: tcell.KeyRune, r: 'P', action: tetris.TogglePause, ok: true},
		{key: tcell.KeyRune, r: 'r', action: tetris.Reset, ok: true},
		{key: tcell.KeyRune, r: 'R', action: tetris.Reset, ok: true},
		{key: tcell.KeyRune, r: 'x'},
		{key: tcell.KeyEnter},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("key %d rune %q", tc.key, tc.r), func(t *testing.T) {
			a, ok := keymap(tcell.NewEventKey(tc.key, tc.r, tcell.ModNone))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.action, a)
		})
	}
}

func TestFlush(t *testing.T) {
	term, s := newTestTerminal(t, false)
	term.SetText(tetris.ScoreText, "Score: 40")
	term.SetText(tetris.MessageText, "Paused\nPress P to unpause")
	term.CreateCell(0, 0, tetris.Red, false)
	term.CreateCell(0, 19, tetris.Red, true)
	term.CreateCell(15, 5, tetris.Blue, false)
	term.Flush()

	// frame
	r, _ := contentAt(s, 0, 0)
	assert.Equal(t, '┌', r)
	r, _ = contentAt(s, 21, 0)
	assert.Equal(t, '┐', r)
	r, _ = contentAt(s, 21, 21)
	assert.Equal(t, '┘', r)

	// block
	assert.Equal(t, "[]", textAt(s, 1, 1, 2))
	_, style := contentAt(s, 1, 1)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true), style)

	// ghost
	assert.Equal(t, "[]", textAt(s, 1, 20, 2))
	_, style = contentAt(s, 1, 20)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.ColorRed), style)

	// queue panel, after the right border.
	assert.Equal(t, "[]", textAt(s, 32, 6, 2))

	// texts
	assert.Equal(t, "Score: 40", textAt(s, 1, 22, 9))
	assert.Equal(t, "Paused", textAt(s, 1, 23, 6))
	assert.Equal(t, "Press P to unpause", textAt(s, 1, 24, 18))
}

func TestFlushNoGhost(t *testing.T) {
	term, s := newTestTerminal(t, true)
	term.CreateCell(3, 19, tetris.Red, true)
	term.Flush()
	assert.Equal(t, "  ", textAt(s, 7, 20, 2))
}

func TestFlushFollowsCells(t *testing.T) {
	term, s := newTestTerminal(t, false)
	h := term.CreateCell(0, 0, tetris.Green, false)
	term.MoveCell(h, 2, 3)
	term.Flush()
	assert.Equal(t, "  ", textAt(s, 1, 1, 2))
	assert.Equal(t, "[]", textAt(s, 5, 4, 2))

	term.DeleteCell(h)
	term.Flush()
	assert.Equal(t, "  ", textAt(s, 5, 4, 2))
}

func TestStart(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	mg := newMockGame()
	term := &Terminal{
		screen: s,
		game:   mg,
		logger: slog.New(slog.DiscardHandler),
	}

	done := make(chan struct{})
	go func() {
		term.Start(context.Background())
		close(done)
	}()

	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	for _, want := range []tetris.Action{tetris.MoveLeft, tetris.HardDrop} {
		select {
		case got := <-mg.actions:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for action %s", want)
		}
	}

	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for the terminal to quit")
	}
	select {
	case <-mg.Done():
	default:
		t.Error("wanted the game to be stopped")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.FramesPerSecond = 0
	_, err := New(cfg, &Options{Screen: tcell.NewSimulationScreen("UTF-8")})
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
}
