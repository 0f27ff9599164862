package grid

import "fmt"

// Point represents x,y coordinates. X is the column and Y is the row.
// A point is not bound to any grid and may be negative.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// offsets holds the unit step for every direction, Y grows southwards
var offsets = [...]Point{
	North:     {X: 0, Y: -1},
	NorthEast: {X: 1, Y: -1},
	East:      {X: 1, Y: 0},
	SouthEast: {X: 1, Y: 1},
	South:     {X: 0, Y: 1},
	SouthWest: {X: -1, Y: 1},
	West:      {X: -1, Y: 0},
	NorthWest: {X: -1, Y: -1},
}

// Add returns the component-wise sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// String formats the point as (x, y)
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Neighbor returns the point one step away in the given direction
func (p Point) Neighbor(d Direction) Point {
	return p.NeighborAt(d, 1)
}

// NeighborAt returns the point distance steps away in the given direction
func (p Point) NeighborAt(d Direction, distance int) Point {
	o := offsets[d]
	return Point{X: p.X + o.X*distance, Y: p.Y + o.Y*distance}
}

// NeighborAtPath returns every point walked when moving distance steps from p,
// nearest first. The origin is excluded and the destination included.
// Only cardinal directions are supported, diagonals panic.
func (p Point) NeighborAtPath(d Direction, distance int) []Point {
	if !d.IsCardinal() {
		panic(fmt.Sprintf("%v is not implemented", d))
	}

	path := make([]Point, 0, max(distance, 0))
	for step := 1; step <= distance; step++ {
		path = append(path, p.NeighborAt(d, step))
	}
	return path
}

// ManhattanDistance calculates the Manhattan distance between two points
func ManhattanDistance(from, to Point) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
