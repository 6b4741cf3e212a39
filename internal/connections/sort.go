package connections

// swapTiles exchanges the slots of t1 and t2 and writes each value back at
// the other's original slot. Any other field changes carried by the values
// are kept.
func (b *Board) swapTiles(t1, t2 Tile) {
	if t1.InitialPosition == t2.InitialPosition {
		return
	}
	p1, p2 := t1.CurrentPosition, t2.CurrentPosition
	t1.CurrentPosition, t2.CurrentPosition = p2, p1
	b.tiles[p2] = t1
	b.tiles[p1] = t2
}

// sortGrid packs each category's tiles into its fixed row, left to right.
// Rows are processed purple, blue, green, yellow; a row whose category has
// fewer than four tiles keeps whatever occupies its remaining slots.
func (b *Board) sortGrid() {
	for _, category := range rowOrder {
		start := category.RowStart()
		for slot := start; slot < start+RowSize; slot++ {
			if b.tiles[slot].Category == category {
				continue
			}
			next := b.nextUnplaced(category, start, slot)
			if next < 0 {
				break
			}
			b.swapTiles(b.tiles[slot], b.tiles[next])
		}
	}
}

// nextUnplaced returns the first slot, in board order, holding a tile of
// category that is not already packed into [start, slot]. Returns -1 if none.
func (b *Board) nextUnplaced(category Category, start, slot int) int {
	for i, t := range b.tiles {
		if i >= start && i <= slot {
			continue
		}
		if t.Category == category {
			return i
		}
	}
	return -1
}
