package puzzles

import (
	"fmt"
	"strconv"

	"github.com/wricardo/puzzler/grid"
	"github.com/wricardo/puzzler/parser"
	"github.com/wricardo/puzzler/puzzler"
)

// Screen dimensions used by the registered puzzle
const (
	ScreenWidth  = 50
	ScreenHeight = 6
)

const (
	pixelOn  = '#'
	pixelOff = '.'
)

const screenPattern = `^(rect|rotate row|rotate column) (?:y=|x=)?(\d+)(?:x| by )(\d+)$`

type screenOp int

const (
	opRect screenOp = iota
	opRotateRow
	opRotateColumn
)

var screenOps = map[string]screenOp{
	"rect":          opRect,
	"rotate row":    opRotateRow,
	"rotate column": opRotateColumn,
}

type screenInstruction struct {
	op   screenOp
	a, b int
}

// Screen is a lit-pixel display driven by rect and rotate instructions
type Screen struct {
	puzzler.Base
	width, height int
	instructions  []screenInstruction
	display       *grid.Grid
	applied       bool
}

// NewScreen creates a screen of the given size. It panics if the size is not
// positive.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height}
	s.reset()
	return s
}

func (s *Screen) reset() {
	display, err := grid.NewWith(s.height, s.width, func(grid.Point) rune { return pixelOff })
	if err != nil {
		panic(err)
	}
	s.display = display
	s.applied = false
}

// Name returns the display name
func (s *Screen) Name() string { return "Screen" }

// InputFile returns the sample instruction path
func (s *Screen) InputFile() string { return "inputs/screen.txt" }

// Parse reads the instructions and clears the display
func (s *Screen) Parse(lines []string) error {
	instructions, err := parser.WithRegex(nonEmpty(lines), screenPattern, decodeScreenInstruction)
	if err != nil {
		return err
	}

	for _, in := range instructions {
		if err := s.check(in); err != nil {
			return err
		}
	}

	s.instructions = instructions
	s.reset()
	return nil
}

func decodeScreenInstruction(groups []string) (screenInstruction, error) {
	a, err := strconv.Atoi(groups[1])
	if err != nil {
		return screenInstruction{}, err
	}
	b, err := strconv.Atoi(groups[2])
	if err != nil {
		return screenInstruction{}, err
	}
	return screenInstruction{op: screenOps[groups[0]], a: a, b: b}, nil
}

// check rejects instructions the display cannot carry out
func (s *Screen) check(in screenInstruction) error {
	switch in.op {
	case opRect:
		if in.a > s.width || in.b > s.height {
			return fmt.Errorf("rect %dx%d does not fit a %dx%d screen", in.a, in.b, s.width, s.height)
		}
	case opRotateRow:
		if in.a >= s.height {
			return fmt.Errorf("row %d is out of range", in.a)
		}
	case opRotateColumn:
		if in.a >= s.width {
			return fmt.Errorf("column %d is out of range", in.a)
		}
	}
	return nil
}

func (s *Screen) apply() error {
	if s.applied {
		return nil
	}

	for _, in := range s.instructions {
		switch in.op {
		case opRect:
			cells := make([]grid.Cell, 0, in.a*in.b)
			for y := 0; y < in.b; y++ {
				for x := 0; x < in.a; x++ {
					cells = append(cells, grid.Cell{Point: grid.Point{X: x, Y: y}, Value: pixelOn})
				}
			}
			if err := s.display.Fill(cells); err != nil {
				return err
			}
		case opRotateRow:
			s.display.RowRotateRight(in.a, in.b)
		case opRotateColumn:
			s.display.ColRotateDown(in.a, in.b)
		}
	}

	s.applied = true
	return nil
}

// SolvePart1 returns the number of lit pixels after every instruction
func (s *Screen) SolvePart1() (string, error) {
	if err := s.apply(); err != nil {
		return "", err
	}
	return strconv.Itoa(s.display.Count(pixelOn)), nil
}

// SolvePart2 returns the rendered display, starting on its own line
func (s *Screen) SolvePart2() (string, error) {
	if err := s.apply(); err != nil {
		return "", err
	}
	return "\n" + s.display.String(), nil
}

// Display returns the screen pixels
func (s *Screen) Display() *grid.Grid {
	return s.display
}
