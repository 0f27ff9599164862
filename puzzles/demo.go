package puzzles

import (
	"strconv"

	"github.com/wricardo/puzzler/parser"
	"github.com/wricardo/puzzler/puzzler"
)

// Demo sums a list of integers, one per line
type Demo struct {
	puzzler.Base
	numbers []int
}

// NewDemo returns an empty Demo
func NewDemo() *Demo {
	return &Demo{}
}

// Name returns the display name
func (d *Demo) Name() string { return "Demo" }

// InputFile returns the sample input path
func (d *Demo) InputFile() string { return "inputs/demo.txt" }

// Parse reads one integer per non-blank line
func (d *Demo) Parse(lines []string) error {
	numbers, err := parser.Integer(nonEmpty(lines))
	if err != nil {
		return err
	}
	d.numbers = numbers
	return nil
}

// SolvePart1 returns the sum of the numbers
func (d *Demo) SolvePart1() (string, error) {
	sum := 0
	for _, n := range d.numbers {
		sum += n
	}
	return strconv.Itoa(sum), nil
}

// nonEmpty drops blank lines, which input files often end with
func nonEmpty(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return kept
}
