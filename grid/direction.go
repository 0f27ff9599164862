package grid

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedDirection is returned when a glyph does not name a direction
var ErrUnrecognizedDirection = errors.New("direction not recognized")

// Direction represents one of the eight compass headings on the grid
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var (
	// Cardinal lists the four axis-aligned directions, clockwise from North
	Cardinal = [...]Direction{North, East, South, West}

	// All lists every direction, clockwise from North
	All = [...]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

var directionNames = [...]string{
	North:     "North",
	NorthEast: "NorthEast",
	East:      "East",
	SouthEast: "SouthEast",
	South:     "South",
	SouthWest: "SouthWest",
	West:      "West",
	NorthWest: "NorthWest",
}

// String returns the name of the direction
func (d Direction) String() string {
	if d < North || d > NorthWest {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// IsCardinal reports whether d is North, East, South or West
func (d Direction) IsCardinal() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

// Left turns a cardinal direction 90 degrees counterclockwise.
// Turning is undefined for diagonals and panics.
func (d Direction) Left() Direction {
	switch d {
	case East:
		return North
	case South:
		return East
	case West:
		return South
	case North:
		return West
	}
	panic(fmt.Sprintf("invalid direction for left %q", d))
}

// Right turns a cardinal direction 90 degrees clockwise.
// Turning is undefined for diagonals and panics.
func (d Direction) Right() Direction {
	switch d {
	case East:
		return South
	case South:
		return West
	case West:
		return North
	case North:
		return East
	}
	panic(fmt.Sprintf("invalid direction for right %q", d))
}

// Backward reverses a cardinal direction. Panics for diagonals.
func (d Direction) Backward() Direction {
	switch d {
	case East:
		return West
	case South:
		return North
	case West:
		return East
	case North:
		return South
	}
	panic(fmt.Sprintf("invalid direction for backward %q", d))
}

// ParseDirection maps the arrow glyphs '<', '^', '>' and 'v' to
// West, North, East and South
func ParseDirection(r rune) (Direction, error) {
	switch r {
	case '<':
		return West, nil
	case '^':
		return North, nil
	case '>':
		return East, nil
	case 'v':
		return South, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedDirection, r)
}

// ParseDirectionByte is ParseDirection for a single input byte
func ParseDirectionByte(b byte) (Direction, error) {
	return ParseDirection(rune(b))
}
