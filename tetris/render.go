package tetris

// Handle identifies a cell created on a Renderer.
type Handle int

// TextSlot identifies a text area of the Renderer.
type TextSlot int

const (
	ScoreText   TextSlot = iota // "Score: N", refreshed every tick.
	MessageText                 // Pause and game over messages. Empty when hidden.
)

// Renderer draws what the engine tells it to. Coordinates are tiles, with
// cells at x >= Width belonging to the queue panel.
type Renderer interface {
	// CreateCell draws a new cell and returns its handle. Ghost cells are the
	// landing preview and must look different from normal cells.
	CreateCell(x, y int, c Color, ghost bool) Handle
	MoveCell(h Handle, dx, dy int)
	DeleteCell(h Handle)
	SetText(slot TextSlot, text string)
}

// Flusher is implemented by renderers that buffer their output until a tick
// or an input has been fully handled.
type Flusher interface {
	Flush()
}
