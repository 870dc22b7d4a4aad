package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NopRenderer draws nothing.
type NopRenderer struct{}

func (NopRenderer) CreateCell(int, int, Color, bool) Handle { return 0 }
func (NopRenderer) MoveCell(Handle, int, int)               {}
func (NopRenderer) DeleteCell(Handle)                       {}
func (NopRenderer) SetText(TextSlot, string)                {}

// RecordedCell is a cell alive on a RecordingRenderer.
type RecordedCell struct {
	Cell
	Color Color
	Ghost bool
}

// RecordingRenderer keeps the cells and texts it was asked to draw.
type RecordingRenderer struct {
	Cells   map[Handle]*RecordedCell
	Texts   map[TextSlot]string
	Flushes int
	next    Handle
}

func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{
		Cells: make(map[Handle]*RecordedCell),
		Texts: make(map[TextSlot]string),
	}
}

func (r *RecordingRenderer) CreateCell(x, y int, c Color, ghost bool) Handle {
	r.next++
	r.Cells[r.next] = &RecordedCell{Cell: Cell{X: x, Y: y}, Color: c, Ghost: ghost}
	return r.next
}

func (r *RecordingRenderer) MoveCell(h Handle, dx, dy int) {
	if c, ok := r.Cells[h]; ok {
		c.Cell = c.add(dx, dy)
	}
}

func (r *RecordingRenderer) DeleteCell(h Handle)                { delete(r.Cells, h) }
func (r *RecordingRenderer) SetText(slot TextSlot, text string) { r.Texts[slot] = text }
func (r *RecordingRenderer) Flush()                             { r.Flushes++ }

// BoardCells returns the live cells inside a board of the given width,
// split into normal and ghost cells.
func (r *RecordingRenderer) BoardCells(width int) (normal, ghost []Cell) {
	for _, c := range r.Cells {
		switch {
		case c.X >= width:
		case c.Ghost:
			ghost = append(ghost, c.Cell)
		default:
			normal = append(normal, c.Cell)
		}
	}
	return normal, ghost
}

// FixedDice returns its rolls in order, starting over when it runs out.
type FixedDice struct {
	Rolls []int
	i     int
}

func (d *FixedDice) IntN(n int) int {
	if len(d.Rolls) == 0 {
		return 0
	}
	v := d.Rolls[d.i%len(d.Rolls)] % n
	d.i++
	return v
}

// NewTestTetris creates a game on the default board whose dice rolls the
// given catalog indexes, so the first spawned piece is pieces[0].
func NewTestTetris(r Renderer, pieces ...int) *Tetris {
	t, err := New(DefaultConfig(), r, &FixedDice{Rolls: pieces})
	if err != nil {
		panic(err)
	}
	return t
}
