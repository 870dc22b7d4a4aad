package tetris

import "slices"

// FilledRows returns the rows whose every column holds a settled block,
// top to bottom.
func (b *Board) FilledRows() []int {
	count := make([]int, b.height)
	b.inactive.ForEach(func(_ int, blk *Block) bool {
		count[blk.Y]++
		return true
	})
	var rows []int
	for y, n := range count {
		if n == b.width {
			rows = append(rows, y)
		}
	}
	return rows
}

// DeleteRows removes the settled blocks in rows. Settled blocks above the
// lowest deleted row go back to the active set so they fall again and may
// fill more rows.
func (b *Board) DeleteRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	lowest := slices.Max(rows)
	for _, blk := range b.Inactive() {
		switch {
		case slices.Contains(rows, blk.Y):
			b.inactive.Del(b.key(blk.Cell))
			b.deleteBlock(blk)
		case blk.Y < lowest:
			b.inactive.Del(b.key(blk.Cell))
			b.active = append(b.active, blk)
		}
	}
}
