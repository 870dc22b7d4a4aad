// Package tetris contains the logic of the game: a tick driven state machine
// moving a falling piece over a board of settled blocks.
package tetris

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Side panel geometry, in tiles.
const (
	queueColumnOffset = 5 // counted from the board's right edge.
	queueTopRow       = 5
	queueGap          = 1 // empty rows between two queued pieces.
)

// Dice draws piece indexes. Every piece has the same chance on every draw,
// there is no bag. *rand.Rand from math/rand/v2 satisfies it.
type Dice interface {
	IntN(n int) int
}

// Tetris is the game state. It isn't safe for concurrent use, see Game.
type Tetris struct {
	cfg      Config
	renderer Renderer
	dice     Dice
	board    *Board

	state, previous State
	score           int
	queue           []int

	queueBlocks []Handle
	ghost       []Cell
	ghostBlocks []Handle
}

// New returns a game waiting to spawn its first piece. A nil renderer draws
// nothing and a nil dice is seeded from cfg.Seed.
func New(cfg Config, r Renderer, d Dice) (*Tetris, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NopRenderer{}
	}
	if d == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano()) //nolint: gosec
		}
		d = rand.New(rand.NewPCG(seed, seed))
	}
	t := &Tetris{
		cfg:      cfg,
		renderer: r,
		dice:     d,
		board:    newBoard(cfg.Width, cfg.Height, r),
		state:    SpawnShape,
		previous: SpawnShape,
		queue:    make([]int, 0, cfg.QueueLength),
	}
	for range cfg.QueueLength {
		t.queue = append(t.queue, t.roll())
	}
	t.renderer.SetText(ScoreText, t.scoreText())
	return t, nil
}

func (t *Tetris) roll() int { return t.dice.IntN(len(Catalog)) }

func (t *Tetris) State() State         { return t.state }
func (t *Tetris) PreviousState() State { return t.previous }
func (t *Tetris) Score() int           { return t.score }

// Queue returns the catalog indexes of the upcoming pieces, next first.
func (t *Tetris) Queue() []int { return append([]int(nil), t.queue...) }

// Ghost returns where the falling piece would land. It is empty unless a
// piece is moving.
func (t *Tetris) Ghost() []Cell { return append([]Cell(nil), t.ghost...) }

func (t *Tetris) ActiveCells() []Cell   { return t.board.ActiveCells() }
func (t *Tetris) InactiveCells() []Cell { return t.board.InactiveCells() }
func (t *Tetris) Pivot() Pivot          { return t.board.Pivot() }

func (t *Tetris) setState(s State) {
	if s == t.state {
		return
	}
	if !canTransition(t.state, s) {
		panic(fmt.Sprintf("tetris: transition from %s to %s is not allowed", t.state, s))
	}
	t.previous, t.state = t.state, s
}

// Tick advances the game by one step of the clock: a spawn, a gravity step or
// a batch of row clears. Paused and finished games only refresh the score.
func (t *Tetris) Tick() {
	switch t.state {
	case SpawnShape:
		t.spawn()
	case ShapeMoving:
		t.moveDown()
	case ClearingRows:
		if len(t.board.active) > 0 {
			t.moveDown()
			break
		}
		if rows := t.board.FilledRows(); len(rows) > 0 {
			t.board.DeleteRows(rows)
		} else {
			t.setState(SpawnShape)
		}
	}
	t.renderer.SetText(ScoreText, t.scoreText())
}

// Apply runs the player action a.
func (t *Tetris) Apply(a Action) {
	switch a {
	case MoveLeft:
		t.MoveLeft()
	case MoveRight:
		t.MoveRight()
	case RotateCW:
		t.Rotate()
	case SoftDrop:
		t.SoftDrop()
	case HardDrop:
		t.HardDrop()
	case TogglePause:
		t.TogglePause()
	case Reset:
		t.Reset()
	}
}

func (t *Tetris) spawn() {
	next := t.queue[0]
	t.queue = append(t.queue[1:], t.roll())
	p := Catalog[next]
	col := t.cfg.SpawnColumn()

	t.drawQueue()
	for _, c := range p.Cells(col) {
		if t.board.isInactive(c) {
			t.setState(GameOver)
			t.renderer.SetText(MessageText, fmt.Sprintf("Game over! Final score: %d\nPress R to reset", t.score))
			return
		}
	}
	t.board.spawn(p, col)
	t.setState(ShapeMoving)
	t.updateGhost()
}

// moveDown drops the active blocks one row, or settles the resting ones when
// they can't drop.
func (t *Tetris) moveDown() {
	if !t.board.StepDown() {
		t.settle()
	}
}

func (t *Tetris) settle() {
	t.board.Settle()
	t.setState(ClearingRows)
	t.updateGhost()
}

// MoveLeft moves the falling piece one column left if nothing is in the way.
func (t *Tetris) MoveLeft() {
	if t.state == ShapeMoving && t.board.MoveLeft() {
		t.updateGhost()
	}
}

// MoveRight moves the falling piece one column right if nothing is in the way.
func (t *Tetris) MoveRight() {
	if t.state == ShapeMoving && t.board.MoveRight() {
		t.updateGhost()
	}
}

// Rotate turns the falling piece clockwise, see Board.Rotate.
func (t *Tetris) Rotate() {
	if t.state == ShapeMoving && t.board.Rotate() {
		t.updateGhost()
	}
}

// SoftDrop forces one gravity step and scores it, even when the step settles
// the piece.
func (t *Tetris) SoftDrop() {
	if t.state != ShapeMoving {
		return
	}
	t.moveDown()
	t.score += t.cfg.SoftDropPoints
}

// HardDrop drops the falling piece to its landing row and settles it. The
// score grows with the square of the distance.
func (t *Tetris) HardDrop() {
	if t.state != ShapeMoving {
		return
	}
	distance := 0
	for t.board.StepDown() {
		distance++
	}
	t.score += distance * distance * t.cfg.HardDropPoints
	t.settle()
}

// TogglePause pauses a running game or resumes a paused one in the state it
// was paused in.
func (t *Tetris) TogglePause() {
	switch t.state {
	case Paused:
		t.setState(t.previous)
		t.renderer.SetText(MessageText, "")
	case GameOver:
	default:
		t.setState(Paused)
		t.renderer.SetText(MessageText, "Paused\nPress P to unpause")
	}
}

// Reset starts a new game after a game over. The queue is kept.
func (t *Tetris) Reset() {
	if t.state != GameOver {
		return
	}
	t.board.clear()
	t.clearGhost()
	t.renderer.SetText(MessageText, "")
	t.score = 0
	t.setState(SpawnShape)
}

func (t *Tetris) clearGhost() {
	for _, h := range t.ghostBlocks {
		t.renderer.DeleteCell(h)
	}
	t.ghostBlocks = t.ghostBlocks[:0]
	t.ghost = nil
}

func (t *Tetris) updateGhost() {
	t.clearGhost()
	if t.state != ShapeMoving {
		return
	}
	t.ghost = t.board.landing()
	for i, c := range t.ghost {
		t.ghostBlocks = append(t.ghostBlocks, t.renderer.CreateCell(c.X, c.Y, t.board.active[i].Color, true))
	}
}

func (t *Tetris) drawQueue() {
	for _, h := range t.queueBlocks {
		t.renderer.DeleteCell(h)
	}
	t.queueBlocks = t.queueBlocks[:0]
	x, y := t.cfg.Width+queueColumnOffset, queueTopRow
	for _, i := range t.queue {
		p := Catalog[i]
		for _, o := range p.Offsets {
			t.queueBlocks = append(t.queueBlocks, t.renderer.CreateCell(x+o.X, y+o.Y, p.Color, false))
		}
		y += queueGap + p.height()
	}
}

func (t *Tetris) scoreText() string {
	return fmt.Sprintf("Score: %d", t.score)
}
