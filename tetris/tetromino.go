package tetris

type Shape string

const (
	T Shape = "T"
	L Shape = "L"
	J Shape = "J"
	I Shape = "I"
	S Shape = "S"
	O Shape = "O"
	Z Shape = "Z"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Orange
	Purple
	Cyan
)

var colorNames = [...]string{"red", "green", "blue", "yellow", "orange", "purple", "cyan"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// Pivot is a rotation center in half-tile units, so X2 == 3 is x == 1.5.
type Pivot struct {
	X2, Y2 int
}

// X returns the horizontal position of the pivot in tiles.
func (p Pivot) X() float64 { return float64(p.X2) / 2 }

// Y returns the vertical position of the pivot in tiles.
func (p Pivot) Y() float64 { return float64(p.Y2) / 2 }

func (p Pivot) translate(dx, dy int) Pivot {
	return Pivot{X2: p.X2 + 2*dx, Y2: p.Y2 + 2*dy}
}

// Piece is an immutable catalog entry. Offsets and Pivot are relative to the
// spawn column.
type Piece struct {
	Shape   Shape
	Offsets [4]Cell
	Color   Color
	Pivot   Pivot
}

// Cells returns the piece cells when spawned at column col.
func (p Piece) Cells(col int) [4]Cell {
	var cells [4]Cell
	for i, o := range p.Offsets {
		cells[i] = Cell{X: o.X + col, Y: o.Y}
	}
	return cells
}

// PivotAt returns the rotation center of the piece spawned at column col.
func (p Piece) PivotAt(col int) Pivot {
	return p.Pivot.translate(col, 0)
}

// height is the number of rows the piece spans in its spawn orientation.
func (p Piece) height() int {
	h := 0
	for _, o := range p.Offsets {
		h = max(h, o.Y+1)
	}
	return h
}

// Catalog holds the seven pieces in their spawn orientation, indexed 0-6.
// Offsets are (x, y) with y growing downwards. P marks a pivot sitting on a
// cell; the pivots of I (-0.5, 1.5) and O (0.5, 0.5) fall between cells.
//
//	T  . O .    L  . . O    J  O . .    I  O    S  O .    O  O O    Z  . O
//	   O P O       O P O       O P O       O       P O       O O       O P
//	                                       O       . O                 O .
//	                                       O
var Catalog = [7]Piece{
	{Shape: T, Offsets: [4]Cell{{1, 0}, {0, 1}, {1, 1}, {2, 1}}, Color: Red, Pivot: Pivot{2, 2}},
	{Shape: L, Offsets: [4]Cell{{2, 0}, {0, 1}, {1, 1}, {2, 1}}, Color: Green, Pivot: Pivot{2, 2}},
	{Shape: J, Offsets: [4]Cell{{0, 0}, {0, 1}, {1, 1}, {2, 1}}, Color: Blue, Pivot: Pivot{2, 2}},
	{Shape: I, Offsets: [4]Cell{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, Color: Yellow, Pivot: Pivot{-1, 3}},
	{Shape: S, Offsets: [4]Cell{{0, 0}, {0, 1}, {1, 1}, {1, 2}}, Color: Orange, Pivot: Pivot{0, 2}},
	{Shape: O, Offsets: [4]Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, Color: Purple, Pivot: Pivot{1, 1}},
	{Shape: Z, Offsets: [4]Cell{{1, 0}, {1, 1}, {0, 1}, {0, 2}}, Color: Cyan, Pivot: Pivot{2, 2}},
}
