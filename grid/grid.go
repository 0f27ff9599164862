package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when a grid would have no rows or columns
	ErrEmptyInput = errors.New("grid input is empty")
	// ErrInvalidShape is returned for a non-positive row or column count
	ErrInvalidShape = errors.New("grid shape is invalid")
	// ErrOutOfBounds is returned when a point lies outside the grid
	ErrOutOfBounds = errors.New("point is not in the grid")
)

// Grid is a fixed-size rectangular matrix of characters.
// The shape is set at construction and never changes afterwards.
type Grid struct {
	rows  int
	cols  int
	cells [][]rune
}

// Cell pairs a point with the character to store there
type Cell struct {
	Point Point
	Value rune
}

// Neighbor is a point reached from another point and the direction taken
type Neighbor struct {
	Point     Point
	Direction Direction
}

// New creates a grid from a matrix of rows. The column count is taken from
// the first row; the remaining rows must have the same length. The rows are
// copied, so later writes to matrix do not reach the grid.
func New(matrix [][]rune) (*Grid, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrEmptyInput)
	}
	if len(matrix[0]) == 0 {
		return nil, fmt.Errorf("%w: row 0 has no columns", ErrEmptyInput)
	}

	cells := make([][]rune, len(matrix))
	for y, row := range matrix {
		cells[y] = append([]rune(nil), row...)
	}

	return &Grid{
		rows:  len(matrix),
		cols:  len(matrix[0]),
		cells: cells,
	}, nil
}

// NewWith creates a rows x cols grid where every cell is produced by fn
func NewWith(rows, cols int, fn func(Point) rune) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}

	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = make([]rune, cols)
		for x := range cells[y] {
			cells[y][x] = fn(Point{X: x, Y: y})
		}
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// FromStrings creates a grid with one row per line
func FromStrings(lines ...string) (*Grid, error) {
	matrix := make([][]rune, len(lines))
	for i, line := range lines {
		matrix[i] = []rune(line)
	}
	return New(matrix)
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	return g.cols
}

// Contains reports whether p addresses a cell of the grid
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// At returns the character at p. The caller must check Contains first;
// a point outside the grid panics.
func (g *Grid) At(p Point) rune {
	g.mustContain(p)
	return g.cells[p.Y][p.X]
}

// Set stores value at p. A point outside the grid panics.
func (g *Grid) Set(p Point, value rune) {
	g.mustContain(p)
	g.cells[p.Y][p.X] = value
}

func (g *Grid) mustContain(p Point) {
	if !g.Contains(p) {
		panic(fmt.Sprintf("point %v is not in the %dx%d grid", p, g.rows, g.cols))
	}
}

// Fill writes every value, or nothing at all when one of the points is
// outside the grid
func (g *Grid) Fill(values []Cell) error {
	for _, v := range values {
		if !g.Contains(v.Point) {
			return fmt.Errorf("fill %v: %w", v.Point, ErrOutOfBounds)
		}
	}

	for _, v := range values {
		g.cells[v.Point.Y][v.Point.X] = v.Value
	}
	return nil
}

// Neighbor returns the neighbor of p in direction d if it lies in the grid
func (g *Grid) Neighbor(p Point, d Direction) (Neighbor, bool) {
	return g.NeighborIf(p, d, func(Point, Direction) bool { return true })
}

// NeighborIf is Neighbor restricted to neighbors accepted by fn
func (g *Grid) NeighborIf(p Point, d Direction, fn func(Point, Direction) bool) (Neighbor, bool) {
	next := p.Neighbor(d)
	if !g.Contains(next) || !fn(next, d) {
		return Neighbor{}, false
	}
	return Neighbor{Point: next, Direction: d}, true
}

// Neighbors returns the neighbors of p for each direction in order,
// skipping those outside the grid
func (g *Grid) Neighbors(p Point, directions []Direction) []Neighbor {
	return g.NeighborsIf(p, directions, func(Point, Direction) bool { return true })
}

// NeighborsIf is Neighbors restricted to neighbors accepted by fn
func (g *Grid) NeighborsIf(p Point, directions []Direction, fn func(Point, Direction) bool) []Neighbor {
	var neighbors []Neighbor
	for _, d := range directions {
		if n, ok := g.NeighborIf(p, d, fn); ok {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// FindFunc returns the points whose character satisfies fn, in row-major order
func (g *Grid) FindFunc(fn func(rune) bool) []Point {
	var points []Point
	for y, row := range g.cells {
		for x, c := range row {
			if fn(c) {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// Find returns the positions of every occurrence of value, in row-major order
func (g *Grid) Find(value rune) []Point {
	return g.FindIf(value, func() bool { return true })
}

// FindIf is Find gated by guard. The guard does not see the cell; it is
// evaluated for every matching cell and must return true for the cell to
// be reported.
func (g *Grid) FindIf(value rune, guard func() bool) []Point {
	return g.FindFunc(func(c rune) bool {
		return c == value && guard()
	})
}

// Count returns the number of cells holding value
func (g *Grid) Count(value rune) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == value {
				n++
			}
		}
	}
	return n
}

// Row returns the content of a row, false when the row does not exist
func (g *Grid) Row(row int) (string, bool) {
	if row < 0 || row >= g.rows {
		return "", false
	}
	return string(g.cells[row]), true
}

// Col returns the content of a column read top to bottom, false when the
// column does not exist
func (g *Grid) Col(col int) (string, bool) {
	if col < 0 || col >= g.cols {
		return "", false
	}

	column := make([]rune, g.rows)
	for y := range g.cells {
		column[y] = g.cells[y][col]
	}
	return string(column), true
}

// Lines returns every row as a string
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	for y, row := range g.cells {
		lines[y] = string(row)
	}
	return lines
}

// String joins the rows with newlines
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Equals compares the grid with one string per row
func (g *Grid) Equals(lines ...string) bool {
	if len(lines) != g.rows {
		return false
	}
	for y, line := range lines {
		row := []rune(line)
		if len(row) != g.cols {
			return false
		}
		for x, c := range row {
			if g.cells[y][x] != c {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([][]rune, g.rows)
	for y, row := range g.cells {
		cells[y] = append([]rune(nil), row...)
	}
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}
