package grid

import "fmt"

// line addresses a single row or column of the grid by index
type line struct {
	n   int
	get func(i int) rune
	set func(i int, v rune)
}

func (l line) swap(i, j int) {
	a, b := l.get(i), l.get(j)
	l.set(i, b)
	l.set(j, a)
}

func (g *Grid) row(row int) line {
	if row < 0 || row >= g.rows {
		panic(fmt.Sprintf("row %d is not in the %dx%d grid", row, g.rows, g.cols))
	}
	cells := g.cells[row]
	return line{
		n:   g.cols,
		get: func(i int) rune { return cells[i] },
		set: func(i int, v rune) { cells[i] = v },
	}
}

func (g *Grid) col(col int) line {
	if col < 0 || col >= g.cols {
		panic(fmt.Sprintf("column %d is not in the %dx%d grid", col, g.rows, g.cols))
	}
	return line{
		n:   g.rows,
		get: func(i int) rune { return g.cells[i][col] },
		set: func(i int, v rune) { g.cells[i][col] = v },
	}
}

func checkShuffle(shuffle int) {
	if shuffle < 0 {
		panic(fmt.Sprintf("negative shuffle %d", shuffle))
	}
}

// RowShiftLeft moves the row content shuffle cells to the left.
// Cells vacated on the right are set to fill.
func (g *Grid) RowShiftLeft(row, shuffle int, fill rune) {
	shiftTowardStart(g.row(row), shuffle, fill)
}

// RowShiftRight moves the row content shuffle cells to the right.
// Cells vacated on the left are set to fill.
func (g *Grid) RowShiftRight(row, shuffle int, fill rune) {
	shiftTowardEnd(g.row(row), shuffle, fill)
}

// ColShiftUp moves the column content shuffle cells up.
// Cells vacated at the bottom are set to fill.
func (g *Grid) ColShiftUp(col, shuffle int, fill rune) {
	shiftTowardStart(g.col(col), shuffle, fill)
}

// ColShiftDown moves the column content shuffle cells down.
// Cells vacated at the top are set to fill.
func (g *Grid) ColShiftDown(col, shuffle int, fill rune) {
	shiftTowardEnd(g.col(col), shuffle, fill)
}

// shiftTowardStart swaps in ascending order so every source is read before
// it is overwritten, then overwrites the tail
func shiftTowardStart(l line, shuffle int, fill rune) {
	checkShuffle(shuffle)
	if shuffle == 0 {
		return
	}

	keep := max(l.n-shuffle, 0)
	for i := 0; i < keep; i++ {
		l.swap(i, i+shuffle)
	}
	for i := keep; i < l.n; i++ {
		l.set(i, fill)
	}
}

// shiftTowardEnd mirrors shiftTowardStart: descending swaps, then the head
func shiftTowardEnd(l line, shuffle int, fill rune) {
	checkShuffle(shuffle)
	if shuffle == 0 {
		return
	}

	for i := l.n - 1; i >= shuffle; i-- {
		l.swap(i, i-shuffle)
	}
	for i := 0; i < min(shuffle, l.n); i++ {
		l.set(i, fill)
	}
}

// RowRotateLeft rotates the row shuffle cells to the left, wrapping around
func (g *Grid) RowRotateLeft(row, shuffle int) {
	rotateTowardStart(g.row(row), shuffle)
}

// RowRotateRight rotates the row shuffle cells to the right, wrapping around
func (g *Grid) RowRotateRight(row, shuffle int) {
	rotateTowardEnd(g.row(row), shuffle)
}

// ColRotateUp rotates the column shuffle cells up, wrapping around
func (g *Grid) ColRotateUp(col, shuffle int) {
	rotateTowardStart(g.col(col), shuffle)
}

// ColRotateDown rotates the column shuffle cells down, wrapping around
func (g *Grid) ColRotateDown(col, shuffle int) {
	rotateTowardEnd(g.col(col), shuffle)
}

// rotateTowardStart moves the cell at (i + shuffle) mod n to i
func rotateTowardStart(l line, shuffle int) {
	checkShuffle(shuffle)
	shuffle %= l.n
	if shuffle == 0 {
		return
	}

	rotated := make([]rune, l.n)
	for i := range rotated {
		rotated[i] = l.get((i + shuffle) % l.n)
	}
	for i, v := range rotated {
		l.set(i, v)
	}
}

// rotateTowardEnd moves the cell at i to (i + shuffle) mod n
func rotateTowardEnd(l line, shuffle int) {
	checkShuffle(shuffle)
	shuffle %= l.n
	if shuffle == 0 {
		return
	}

	rotated := make([]rune, l.n)
	for i := range rotated {
		rotated[(i+shuffle)%l.n] = l.get(i)
	}
	for i, v := range rotated {
		l.set(i, v)
	}
}
