package tetris

import "github.com/kamstrup/intmap"

var (
	// a resting block supports the blocks beside and above it.
	supportOffsets = [3]Cell{{1, 0}, {-1, 0}, {0, -1}}
	// any block reached from a resting one spreads to all its neighbors.
	neighborOffsets = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// resting returns, per active block, whether it rests on the floor or on a
// settled block, directly or through a chain of adjacent active blocks.
//
// The search only walks occupied active cells: after a line clear the active
// set can hold several groups of blocks that aren't adjacent to each other,
// and only the groups touching something stop falling.
func (b *Board) resting() []bool {
	marked := make([]bool, len(b.active))
	index := intmap.New[int, int](len(b.active))
	var queue []Cell

	for i, blk := range b.active {
		if b.inBounds(blk.Cell) {
			index.Put(b.key(blk.Cell), i)
		}
		if blk.Y+1 == b.height || b.isInactive(blk.add(0, 1)) {
			marked[i] = true
			for _, o := range supportOffsets {
				queue = append(queue, blk.add(o.X, o.Y))
			}
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if !b.inBounds(c) {
			continue
		}
		i, ok := index.Get(b.key(c))
		if !ok || marked[i] {
			continue
		}
		marked[i] = true
		for _, o := range neighborOffsets {
			queue = append(queue, c.add(o.X, o.Y))
		}
	}
	return marked
}

// Settle moves the resting active blocks to the settled set and returns how
// many were moved. The others keep falling.
func (b *Board) Settle() int {
	marked := b.resting()
	n := 0
	falling := b.active[:0]
	for i, blk := range b.active {
		if marked[i] {
			b.settleBlock(blk)
			n++
			continue
		}
		falling = append(falling, blk)
	}
	clear(b.active[len(falling):])
	b.active = falling
	return n
}
