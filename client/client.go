// Package client plays the game in an ANSI terminal, reading the keyboard in
// raw mode.
package client

import (
	"cascade/tetris"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/eiannone/keyboard"
)

type game interface {
	Run(ctx context.Context)
	Action(tetris.Action)
	Stop()
	Done() <-chan struct{}
}

type Client struct {
	game   game
	render *render
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
}

type Options struct {
	NoGhost bool
	Writer  io.Writer // Defaults to os.Stdout.
}

func New(cfg tetris.Config, l *slog.Logger, o *Options) (*Client, error) {
	if o == nil {
		o = &Options{}
	}
	r, err := newRender(l, cfg, o)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	g, err := tetris.NewGame(cfg, &tetris.Options{Renderer: r, Logger: l})
	if err != nil {
		return nil, err
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		game:   g,
		render: r,
		logger: l,
		kbCh:   kb,
	}, nil
}

// Start runs the game until the player quits or ctx is done.
func (c *Client) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if c.render != nil {
		c.render.open()
		defer c.render.close()
	}
	go c.game.Run(ctx)
	c.listenKB(ctx)
	c.game.Stop()
	<-c.game.Done()
}

// Close gives the terminal back.
func (c *Client) Close() error {
	return keyboard.Close()
}

func (c *Client) listenKB(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.game.Done():
			return
		case event, ok := <-c.kbCh:
			if !ok {
				c.logger.Error("keyboard events channel closed unexpectedly")
				return
			}
			if event.Err != nil {
				c.logger.Error("keyboard events error", slog.String("error", event.Err.Error()))
				return
			}
			if event.Key == keyboard.KeyCtrlC || event.Key == keyboard.KeyEsc {
				c.logger.Debug("quit requested")
				return
			}
			if a, ok := keymap(event); ok {
				c.game.Action(a)
			}
		}
	}
}

func keymap(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
		return tetris.RotateCW, true
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.SoftDrop, true
	case event.Key == keyboard.KeySpace:
		return tetris.HardDrop, true
	case event.Rune == 'p' || event.Rune == 'P':
		return tetris.TogglePause, true
	case event.Rune == 'r' || event.Rune == 'R':
		return tetris.Reset, true
	}
	return "", false
}
