package tetris

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft    Action = "left"   // Moves the piece one column to the left.
	MoveRight   Action = "right"  // Moves the piece one column to the right.
	RotateCW    Action = "rotate" // Rotates the piece clockwise.
	SoftDrop    Action = "down"   // Moves the piece one row down.
	HardDrop    Action = "drop"   // Drops the piece down the stack.
	TogglePause Action = "pause"  // Pauses or resumes the game.
	Reset       Action = "reset"  // Starts a new game after a game over.
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Snapshot is a copy of the observable game state.
type Snapshot struct {
	ID       uuid.UUID
	State    State
	Score    int
	Queue    []int
	Active   []Cell
	Inactive []Cell
	Ghost    []Cell
}

type Options struct {
	Renderer Renderer
	Logger   *slog.Logger
	Ticker   Ticker // Defaults to a wall clock ticker.
	Dice     Dice
}

// Game drives a Tetris from a clock and a stream of player actions. Ticks and
// actions are handled one at a time on the goroutine running Run, so an
// action never sees a half applied tick.
type Game struct {
	actionCh  chan Action
	doneCh    chan struct{}
	stoppedCh chan struct{}
	stopOnce  sync.Once

	tetris   *Tetris
	renderer Renderer
	ticker   Ticker
	interval time.Duration
	logger   *slog.Logger
	id       uuid.UUID
	mu       sync.RWMutex
}

func NewGame(cfg Config, o *Options) (*Game, error) {
	if o == nil {
		o = &Options{}
	}
	t, err := New(cfg, o.Renderer, o.Dice)
	if err != nil {
		return nil, err
	}
	g := &Game{
		actionCh:  make(chan Action),
		doneCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
		tetris:    t,
		renderer:  t.renderer,
		ticker:    o.Ticker,
		interval:  cfg.TickInterval(),
		logger:    o.Logger,
		id:        uuid.New(),
	}
	if g.ticker == nil {
		// the ticker only starts counting once Run resets it.
		g.ticker = newWrappedTicker(time.Hour)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g, nil
}

// Run handles ticks and actions until ctx is done or Stop is called. Pausing
// the game doesn't stop the ticker, paused ticks are just no-ops.
func (g *Game) Run(ctx context.Context) {
	defer close(g.stoppedCh)
	g.ticker.Reset(g.interval)
	defer g.ticker.Stop()

	g.log().Info("game started", slog.Duration("interval", g.interval))
	g.flush()
	for {
		select {
		case <-g.ticker.C():
			g.handle(func(t *Tetris) { t.Tick() })
		case a := <-g.actionCh:
			g.handle(func(t *Tetris) { t.Apply(a) })
		case <-g.doneCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Action queues the player action a. It blocks until the game loop takes it
// and is dropped once the loop has stopped.
func (g *Game) Action(a Action) {
	select {
	case g.actionCh <- a:
	case <-g.stoppedCh:
	}
}

// Stop ends Run. Calling Stop more than once is fine.
func (g *Game) Stop() {
	g.stopOnce.Do(func() { close(g.doneCh) })
}

// Done is closed once Run has returned.
func (g *Game) Done() <-chan struct{} {
	return g.stoppedCh
}

// ID identifies the current game. It changes on every reset.
func (g *Game) ID() uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

// Snapshot returns a copy of the current state that's safe to read
// concurrently.
func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Snapshot{
		ID:       g.id,
		State:    g.tetris.State(),
		Score:    g.tetris.Score(),
		Queue:    g.tetris.Queue(),
		Active:   g.tetris.ActiveCells(),
		Inactive: g.tetris.InactiveCells(),
		Ghost:    g.tetris.Ghost(),
	}
}

func (g *Game) handle(do func(*Tetris)) {
	g.mu.Lock()
	from := g.tetris.State()
	do(g.tetris)
	to := g.tetris.State()
	score := g.tetris.Score()
	if from == GameOver && to == SpawnShape {
		g.id = uuid.New()
	}
	g.mu.Unlock()

	if from != to {
		g.logTransition(from, to, score)
	}
	g.flush()
}

func (g *Game) logTransition(from, to State, score int) {
	l := g.log()
	switch {
	case to == GameOver:
		l.Info("game over", slog.Int("score", score))
	case from == GameOver:
		l.Info("game reset")
	default:
		l.Debug("state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	}
}

func (g *Game) log() *slog.Logger {
	return g.logger.With(slog.String("game", g.ID().String()))
}

func (g *Game) flush() {
	if f, ok := g.renderer.(Flusher); ok {
		f.Flush()
	}
}
