package client

import (
	"cascade/tetris"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos   = "\033[H" // Reset cursor position to 0,0
	clearLine  = "\033[K"
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h"

	emptyCell = "  "
	ghostCell = "[]"

	// panelColumns is the width of the side panel holding the queue.
	panelColumns = 9
	// messageLines is the height reserved below the board for messages.
	messageLines = 2
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:   Cyan,
	tetris.Blue:   Blue,
	tetris.Orange: Orange,
	tetris.Yellow: Yellow,
	tetris.Green:  Green,
	tetris.Red:    Red,
	tetris.Purple: Magenta,
}

type cell struct {
	x, y  int
	color tetris.Color
	ghost bool
}

type templateData struct {
	Border  string
	Rows    []string
	Score   string
	Message []string
}

// render is a tetris.Renderer drawing the whole frame with ANSI escapes on
// every Flush. It's only called from the game loop.
type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template

	width, height int
	noGhost       bool

	cells   map[tetris.Handle]*cell
	next    tetris.Handle
	score   string
	message string
}

func newRender(l *slog.Logger, cfg tetris.Config, o *Options) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	return &render{
		writer:   w,
		logger:   l,
		template: tmp,
		width:    cfg.Width,
		height:   cfg.Height,
		noGhost:  o.NoGhost,
		cells:    make(map[tetris.Handle]*cell),
	}, nil
}

func (r *render) CreateCell(x, y int, c tetris.Color, ghost bool) tetris.Handle {
	r.next++
	r.cells[r.next] = &cell{x: x, y: y, color: c, ghost: ghost}
	return r.next
}

func (r *render) MoveCell(h tetris.Handle, dx, dy int) {
	if c, ok := r.cells[h]; ok {
		c.x += dx
		c.y += dy
	}
}

func (r *render) DeleteCell(h tetris.Handle) { delete(r.cells, h) }

func (r *render) SetText(slot tetris.TextSlot, text string) {
	switch slot {
	case tetris.ScoreText:
		r.score = text
	case tetris.MessageText:
		r.message = text
	}
}

// Flush writes the current frame over the previous one.
func (r *render) Flush() {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.frame()); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func (r *render) open()  { fmt.Fprint(r.writer, hideCursor) }
func (r *render) close() { fmt.Fprint(r.writer, "\r\n"+showCursor) }

func (r *render) frame() *templateData {
	grid := make([][]string, r.height)
	for y := range grid {
		grid[y] = make([]string, r.width+panelColumns)
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}
	for _, c := range r.cells {
		if c.y < 0 || c.y >= r.height || c.x < 0 || c.x >= r.width+panelColumns {
			continue
		}
		switch {
		case !c.ghost:
			grid[c.y][c.x] = fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[c.color])
		case !r.noGhost && grid[c.y][c.x] == emptyCell:
			// a ghost never hides a block.
			grid[c.y][c.x] = ghostCell
		}
	}

	rows := make([]string, r.height)
	for y, row := range grid {
		rows[y] = "|" + strings.Join(row[:r.width], "") + "|" + strings.Join(row[r.width:], "")
	}
	message := strings.Split(r.message, "\n")
	for len(message) < messageLines {
		message = append(message, "")
	}
	return &templateData{
		Border:  strings.Repeat("-", 2*r.width),
		Rows:    rows,
		Score:   r.score,
		Message: message,
	}
}

func loadTemplate() (*template.Template, error) {
	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout. Lines are cleared
	// to their end so shorter messages don't leave leftovers of the previous frame.
	l := strings.ReplaceAll(layout, "\n", clearLine+"\r\n")
	l = strings.ReplaceAll(l, "Cascade", "\033[1mCascade\033[0m")
	return template.New("layout").Parse(l)
}
