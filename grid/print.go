package grid

import (
	"bufio"
	"io"
)

// Print writes the grid to w, one line per row
func (g *Grid) Print(w io.Writer) error {
	return g.PrintHighlighted(w, 0, nil)
}

// PrintHighlighted writes the grid to w, showing marker instead of the cell
// content for every point in highlight
func (g *Grid) PrintHighlighted(w io.Writer, marker rune, highlight []Point) error {
	marked := make(map[Point]struct{}, len(highlight))
	for _, p := range highlight {
		marked[p] = struct{}{}
	}

	bw := bufio.NewWriter(w)
	for y, row := range g.cells {
		// Build the whole line first so it is written only once
		line := make([]rune, len(row))
		for x, c := range row {
			if _, ok := marked[Point{X: x, Y: y}]; ok {
				c = marker
			}
			line[x] = c
		}
		if _, err := bw.WriteString(string(line) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
