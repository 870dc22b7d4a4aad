package tetris

// Rotation around the pivot (px, py) in grid space, y pointing down:
//
//	forward: x' = px + py - y    y' = py - px + x
//	inverse: x  = px - py + y'   y  = px + py - x'
//
// Pieces keep px+py and py-px integral (both coordinates are whole or both
// half tiles), so the half-tile pivot never produces fractional cells.

func (p Pivot) sum() int  { return (p.X2 + p.Y2) / 2 }
func (p Pivot) diff() int { return (p.Y2 - p.X2) / 2 }

func (b *Board) rotate() {
	s, d := b.pivot.sum(), b.pivot.diff()
	for _, blk := range b.active {
		b.moveBlock(blk, s-blk.Y-blk.X, d+blk.X-blk.Y)
	}
}

func (b *Board) unrotate() {
	s, d := b.pivot.sum(), b.pivot.diff()
	for _, blk := range b.active {
		b.moveBlock(blk, blk.Y-d-blk.X, s-blk.X-blk.Y)
	}
}

// Rotate turns the active piece 90° clockwise around its pivot.
//
// Every rotated block is checked in order: a block below the floor aborts the
// rotation, a block one column past a wall gets a single corrective shift back
// when that shift is legal, and a block on a settled cell shifts the piece
// left, else right, else aborts. A rotation that still leaves a block outside
// the board is aborted as well, rather than leaving a block at x = -1 or
// x = width. Aborting restores the exact previous cells.
func (b *Board) Rotate() bool {
	if len(b.active) == 0 {
		return false
	}
	b.rotate()
	kick := 0
	for _, blk := range b.active {
		if blk.Y >= b.height || blk.Y < 0 {
			b.abortRotation(kick)
			return false
		}

		switch {
		case blk.X == -1 && b.MoveRight():
			kick++
		case blk.X == b.width && b.MoveLeft():
			kick--
		}

		if b.isInactive(blk.Cell) {
			switch {
			case b.MoveLeft():
				kick--
			case b.MoveRight():
				kick++
			default:
				b.abortRotation(kick)
				return false
			}
		}
	}
	if !b.fits() {
		b.abortRotation(kick)
		return false
	}
	return true
}

func (b *Board) abortRotation(kick int) {
	if kick != 0 {
		b.shift(-kick, 0)
	}
	b.unrotate()
}

// fits reports whether every active block is inside the board and off the
// settled blocks.
func (b *Board) fits() bool {
	for _, blk := range b.active {
		if !b.inBounds(blk.Cell) || b.isInactive(blk.Cell) {
			return false
		}
	}
	return true
}
