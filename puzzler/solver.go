package puzzler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/wricardo/puzzler/parser"
	"github.com/wricardo/puzzler/project"
)

// MaxParts is the number of parts a puzzle can have
const MaxParts = 3

// ErrInvalidParts is returned when the part count is outside 1..MaxParts
var ErrInvalidParts = errors.New("invalid number of puzzle parts")

// Solver runs the parts of a puzzle in order and prints the answers
type Solver struct {
	puzzle   Puzzle
	parts    int
	root     string
	out      io.Writer
	logger   hclog.Logger
	observer Observer
}

// Option configures a Solver
type Option func(*Solver)

// WithRoot sets the project root used to resolve the puzzle input file
func WithRoot(root string) Option {
	return func(s *Solver) { s.root = root }
}

// WithOutput sets where answers are printed
func WithOutput(w io.Writer) Option {
	return func(s *Solver) { s.out = w }
}

// WithLogger sets the logger
func WithLogger(logger hclog.Logger) Option {
	return func(s *Solver) { s.logger = logger }
}

// WithObserver receives a frame after parsing and after each part when the
// puzzle is a Displayer
func WithObserver(o Observer) Option {
	return func(s *Solver) { s.observer = o }
}

// NewSolver creates a solver for the first parts parts of puzzle
func NewSolver(puzzle Puzzle, parts int, opts ...Option) (*Solver, error) {
	if parts < 1 || parts > MaxParts {
		return nil, fmt.Errorf("%w: '%d', allowed range is <1,%d>", ErrInvalidParts, parts, MaxParts)
	}

	s := &Solver{
		puzzle: puzzle,
		parts:  parts,
		root:   ".",
		out:    io.Discard,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("solver").With("puzzle", puzzle.Name())
	return s, nil
}

// Run loads the puzzle input file, if any, and solves every part
func (s *Solver) Run(ctx context.Context) ([]Result, error) {
	var lines []string
	if rel := s.puzzle.InputFile(); rel != "" {
		path, err := project.File(s.root, rel)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("reading input", "path", path)

		lines, err = parser.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return s.RunLines(ctx, lines)
}

// RunLines solves every part using lines as the puzzle input
func (s *Solver) RunLines(ctx context.Context, lines []string) ([]Result, error) {
	name := s.puzzle.Name()
	fmt.Fprintln(s.out, name)
	fmt.Fprintln(s.out, strings.Repeat("=", len(name)))

	if err := s.puzzle.Parse(lines); err != nil {
		s.logger.Error("parse failed", "error", err)
		return nil, fmt.Errorf("failed to parse %s input: %w", name, err)
	}
	s.logger.Debug("input parsed", "lines", len(lines))
	s.emit(0)

	dispatch := [MaxParts]func() (string, error){
		s.puzzle.SolvePart1,
		s.puzzle.SolvePart2,
		s.puzzle.SolvePart3,
	}

	results := make([]Result, 0, s.parts)
	for part := 1; part <= s.parts; part++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		fmt.Fprintf(s.out, "Part %d: ", part)
		answer, err := dispatch[part-1]()
		if err != nil {
			fmt.Fprintln(s.out)
			s.logger.Error("part failed", "part", part, "error", err)
			return results, fmt.Errorf("%s part %d: %w", name, part, err)
		}
		fmt.Fprintln(s.out, answer)
		s.logger.Info("part solved", "part", part, "answer", answer)

		results = append(results, Result{Part: part, Answer: answer})
		s.emit(part)
	}
	return results, nil
}

func (s *Solver) emit(part int) {
	if s.observer == nil {
		return
	}
	d, ok := s.puzzle.(Displayer)
	if !ok {
		return
	}
	g := d.Display()
	if g == nil {
		return
	}
	s.observer.Observe(Frame{Puzzle: s.puzzle.Name(), Part: part, Rows: g.Lines()})
}
