// Package terminal plays the game full screen on top of tcell.
package terminal

import (
	"cascade/tetris"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	// every tile takes two columns.
	tileWidth = 2
	// the board frame starts at the top left corner of the screen.
	originX, originY = 0, 0
)

var colorMap = map[tetris.Color]tcell.Color{
	tetris.Cyan:   tcell.ColorAqua,
	tetris.Blue:   tcell.ColorBlue,
	tetris.Orange: tcell.ColorOrange,
	tetris.Yellow: tcell.ColorYellow,
	tetris.Green:  tcell.ColorGreen,
	tetris.Red:    tcell.ColorRed,
	tetris.Purple: tcell.ColorPurple,
}

var borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)

type game interface {
	Run(ctx context.Context)
	Action(tetris.Action)
	Stop()
	Done() <-chan struct{}
}

type cell struct {
	x, y  int
	color tetris.Color
	ghost bool
}

// Terminal is both the renderer of a game and the source of its actions.
type Terminal struct {
	screen tcell.Screen
	game   game
	logger *slog.Logger

	width, height int
	noGhost       bool

	cells map[tetris.Handle]*cell
	next  tetris.Handle
	texts map[tetris.TextSlot]string
}

type Options struct {
	Logger  *slog.Logger
	NoGhost bool
	Screen  tcell.Screen // Defaults to the terminal tcell finds.
}

func New(cfg tetris.Config, o *Options) (*Terminal, error) {
	if o == nil {
		o = &Options{}
	}
	s := o.Screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("unable to create screen: %w", err)
		}
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("unable to init screen: %w", err)
	}
	s.HideCursor()

	t := &Terminal{
		screen:  s,
		logger:  o.Logger,
		width:   cfg.Width,
		height:  cfg.Height,
		noGhost: o.NoGhost,
		cells:   make(map[tetris.Handle]*cell),
		texts:   make(map[tetris.TextSlot]string),
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	g, err := tetris.NewGame(cfg, &tetris.Options{Renderer: t, Logger: t.logger})
	if err != nil {
		s.Fini()
		return nil, err
	}
	t.game = g
	return t, nil
}

// Start runs the game until the player quits or ctx is done.
func (t *Terminal) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go t.game.Run(ctx)

	eventCh := make(chan tcell.Event, 20)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// the screen was finalized.
				return
			}
			select {
			case eventCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-t.game.Done():
			break loop
		case ev := <-eventCh:
			if !t.handleEvent(ev) {
				break loop
			}
		}
	}
	t.game.Stop()
	<-t.game.Done()
}

// Close gives the terminal back.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// handleEvent forwards key presses to the game. It returns false once the
// player asked to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			t.logger.Debug("quit requested")
			return false
		}
		if a, ok := keymap(ev); ok {
			t.game.Action(a)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func keymap(ev *tcell.EventKey) (tetris.Action, bool) {
	switch ev.Key() {
	case tcell.KeyRight:
		return tetris.MoveRight, true
	case tcell.KeyLeft:
		return tetris.MoveLeft, true
	case tcell.KeyUp:
		return tetris.RotateCW, true
	case tcell.KeyDown:
		return tetris.SoftDrop, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'd':
			return tetris.MoveRight, true
		case 'a':
			return tetris.MoveLeft, true
		case 'w':
			return tetris.RotateCW, true
		case 's':
			return tetris.SoftDrop, true
		case ' ':
			return tetris.HardDrop, true
		case 'p', 'P':
			return tetris.TogglePause, true
		case 'r', 'R':
			return tetris.Reset, true
		}
	}
	return "", false
}

func (t *Terminal) CreateCell(x, y int, c tetris.Color, ghost bool) tetris.Handle {
	t.next++
	t.cells[t.next] = &cell{x: x, y: y, color: c, ghost: ghost}
	return t.next
}

func (t *Terminal) MoveCell(h tetris.Handle, dx, dy int) {
	if c, ok := t.cells[h]; ok {
		c.x += dx
		c.y += dy
	}
}

func (t *Terminal) DeleteCell(h tetris.Handle)                { delete(t.cells, h) }
func (t *Terminal) SetText(slot tetris.TextSlot, text string) { t.texts[slot] = text }

// Flush redraws the screen from scratch.
func (t *Terminal) Flush() {
	t.screen.Clear()
	t.drawFrame()
	// ghosts first so blocks are drawn over them.
	for _, c := range t.cells {
		if c.ghost && !t.noGhost {
			t.drawTile(c, tcell.StyleDefault.Foreground(colorMap[c.color]))
		}
	}
	for _, c := range t.cells {
		if !c.ghost {
			t.drawTile(c, tcell.StyleDefault.Foreground(colorMap[c.color]).Reverse(true))
		}
	}
	y := originY + t.height + 2
	t.drawText(y, t.texts[tetris.ScoreText])
	for i, line := range strings.Split(t.texts[tetris.MessageText], "\n") {
		t.drawText(y+1+i, line)
	}
	t.screen.Show()
}

// column returns the screen column of tile x. Tiles past the board are drawn
// after its right border.
func (t *Terminal) column(x int) int {
	col := originX + 1 + x*tileWidth
	if x >= t.width {
		col++
	}
	return col
}

func (t *Terminal) drawTile(c *cell, style tcell.Style) {
	if c.x < 0 || c.y < 0 || c.y >= t.height {
		return
	}
	col, row := t.column(c.x), originY+1+c.y
	t.screen.SetContent(col, row, '[', nil, style)
	t.screen.SetContent(col+1, row, ']', nil, style)
}

func (t *Terminal) drawFrame() {
	right := t.column(t.width) - 1
	bottom := originY + t.height + 1
	for y := originY + 1; y < bottom; y++ {
		t.screen.SetContent(originX, y, '│', nil, borderStyle)
		t.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := originX + 1; x < right; x++ {
		t.screen.SetContent(x, originY, '─', nil, borderStyle)
		t.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	t.screen.SetContent(originX, originY, '┌', nil, borderStyle)
	t.screen.SetContent(right, originY, '┐', nil, borderStyle)
	t.screen.SetContent(originX, bottom, '└', nil, borderStyle)
	t.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (t *Terminal) drawText(y int, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(originX+1+i, y, r, nil, tcell.StyleDefault)
	}
}
