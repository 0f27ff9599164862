package puzzler

import "github.com/wricardo/puzzler/grid"

// NotSolved is the answer reported for parts a puzzle does not implement
const NotSolved = "Not solved"

// Puzzle is a problem the Solver can run. Part answers are strings so that
// puzzles may answer with numbers, words or rendered pictures.
type Puzzle interface {
	// Name identifies the puzzle in output and logs
	Name() string

	// InputFile is the input path relative to the project root, or "" when
	// the puzzle reads no input
	InputFile() string

	// Parse receives the input lines before any part is solved
	Parse(lines []string) error

	SolvePart1() (string, error)
	SolvePart2() (string, error)
	SolvePart3() (string, error)
}

// Displayer is implemented by puzzles that keep their state on a grid
type Displayer interface {
	Display() *grid.Grid
}

// Base provides defaults for every Puzzle method except Name
type Base struct{}

func (Base) InputFile() string           { return "" }
func (Base) Parse([]string) error        { return nil }
func (Base) SolvePart1() (string, error) { return NotSolved, nil }
func (Base) SolvePart2() (string, error) { return NotSolved, nil }
func (Base) SolvePart3() (string, error) { return NotSolved, nil }

// Frame is a snapshot of a puzzle grid. Part 0 is the state right after
// parsing.
type Frame struct {
	Puzzle string   `json:"puzzle"`
	Part   int      `json:"part"`
	Rows   []string `json:"rows"`
}

// Observer receives frames while a puzzle is solved
type Observer interface {
	Observe(frame Frame)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Frame)

// Observe calls f(frame)
func (f ObserverFunc) Observe(frame Frame) {
	f(frame)
}

// Result is the answer to one part
type Result struct {
	Part   int    `json:"part"`
	Answer string `json:"answer"`
}
