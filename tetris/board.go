package tetris

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Cell is a tile coordinate. Y grows downwards.
type Cell struct {
	X, Y int
}

func (c Cell) add(dx, dy int) Cell { return Cell{X: c.X + dx, Y: c.Y + dy} }

// Block is a colored cell drawn on the renderer.
type Block struct {
	Cell
	Color  Color
	handle Handle
}

// Board owns the active (falling) and inactive (settled) blocks.
//
// The active blocks keep their insertion order since rotation is applied
// member by member around the shared pivot. Inactive blocks are indexed by
// their packed coordinate, see key().
type Board struct {
	width, height int
	renderer      Renderer

	active   []*Block
	inactive *intmap.Map[int, *Block]
	pivot    Pivot
}

func newBoard(width, height int, r Renderer) *Board {
	return &Board{
		width:    width,
		height:   height,
		renderer: r,
		inactive: intmap.New[int, *Block](width * height),
	}
}

func (b *Board) key(c Cell) int { return c.Y*b.width + c.X }

func (b *Board) inBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// isInactive reports whether a settled block occupies c.
func (b *Board) isInactive(c Cell) bool {
	if !b.inBounds(c) {
		return false
	}
	_, ok := b.inactive.Get(b.key(c))
	return ok
}

func (b *Board) newBlock(c Cell, color Color) *Block {
	return &Block{Cell: c, Color: color, handle: b.renderer.CreateCell(c.X, c.Y, color, false)}
}

func (b *Board) moveBlock(blk *Block, dx, dy int) {
	blk.Cell = blk.add(dx, dy)
	b.renderer.MoveCell(blk.handle, dx, dy)
}

func (b *Board) deleteBlock(blk *Block) {
	b.renderer.DeleteCell(blk.handle)
}

// spawn places the piece at column col as the new active set.
func (b *Board) spawn(p Piece, col int) {
	b.pivot = p.PivotAt(col)
	for _, c := range p.Cells(col) {
		b.active = append(b.active, b.newBlock(c, p.Color))
	}
}

func (b *Board) settleBlock(blk *Block) {
	b.inactive.Put(b.key(blk.Cell), blk)
}

// clear deletes every block on the board.
func (b *Board) clear() {
	for _, blk := range b.active {
		b.deleteBlock(blk)
	}
	b.active = nil
	for _, blk := range b.Inactive() {
		b.deleteBlock(blk)
	}
	b.inactive.Clear()
}

// ActiveCells returns the coordinates of the falling blocks in insertion order.
func (b *Board) ActiveCells() []Cell {
	cells := make([]Cell, len(b.active))
	for i, blk := range b.active {
		cells[i] = blk.Cell
	}
	return cells
}

// Inactive returns the settled blocks sorted top to bottom, left to right.
func (b *Board) Inactive() []*Block {
	blocks := make([]*Block, 0, b.inactive.Len())
	b.inactive.ForEach(func(_ int, blk *Block) bool {
		blocks = append(blocks, blk)
		return true
	})
	slices.SortFunc(blocks, func(a, c *Block) int { return b.key(a.Cell) - b.key(c.Cell) })
	return blocks
}

// InactiveCells returns the coordinates of the settled blocks, see Inactive.
func (b *Board) InactiveCells() []Cell {
	blocks := b.Inactive()
	cells := make([]Cell, len(blocks))
	for i, blk := range blocks {
		cells[i] = blk.Cell
	}
	return cells
}

// Pivot returns the rotation center of the active piece.
func (b *Board) Pivot() Pivot { return b.pivot }

// CanMoveLeft reports whether no active block touches the left wall or has a
// settled block on its left.
func (b *Board) CanMoveLeft() bool {
	for _, blk := range b.active {
		if blk.X == 0 || b.isInactive(blk.add(-1, 0)) {
			return false
		}
	}
	return true
}

// CanMoveRight is the mirror of CanMoveLeft.
func (b *Board) CanMoveRight() bool {
	for _, blk := range b.active {
		if blk.X == b.width-1 || b.isInactive(blk.add(1, 0)) {
			return false
		}
	}
	return true
}

// CanMoveDown reports whether every cell can drop one row. It takes plain
// cells so the ghost preview can be tested too.
func (b *Board) CanMoveDown(cells []Cell) bool {
	for _, c := range cells {
		if c.Y == b.height-1 || b.isInactive(c.add(0, 1)) {
			return false
		}
	}
	return true
}

// shift translates the active blocks and the pivot.
func (b *Board) shift(dx, dy int) {
	for _, blk := range b.active {
		b.moveBlock(blk, dx, dy)
	}
	b.pivot = b.pivot.translate(dx, dy)
}

// MoveLeft shifts the active blocks one column left when legal.
func (b *Board) MoveLeft() bool {
	if !b.CanMoveLeft() {
		return false
	}
	b.shift(-1, 0)
	return true
}

// MoveRight shifts the active blocks one column right when legal.
func (b *Board) MoveRight() bool {
	if !b.CanMoveRight() {
		return false
	}
	b.shift(1, 0)
	return true
}

// StepDown drops the active blocks one row when legal.
func (b *Board) StepDown() bool {
	if len(b.active) == 0 || !b.CanMoveDown(b.ActiveCells()) {
		return false
	}
	b.shift(0, 1)
	return true
}

// landing returns where the active blocks would rest after a hard drop.
func (b *Board) landing() []Cell {
	cells := b.ActiveCells()
	if len(cells) == 0 {
		return nil
	}
	for b.CanMoveDown(cells) {
		for i := range cells {
			cells[i].Y++
		}
	}
	return cells
}
