// Package puzzler runs multi-part puzzles against their input.
//
// A puzzle implements the Puzzle interface, usually by embedding Base and
// overriding the parts it can solve. The Solver reads the input file named by
// the puzzle from the project root, hands the lines to Parse, and then solves
// parts 1..N in order, printing each answer as it is produced:
//
//	Screen
//	======
//	Part 1: 106
//	Part 2: ...
//
// Puzzles that implement Displayer publish a Frame of their grid after parsing
// and after each part to the configured Observer, which is how the viewer
// server streams puzzle state to browsers.
//
// Usage:
//
//	solver, err := puzzler.NewSolver(p, 2,
//		puzzler.WithRoot(root),
//		puzzler.WithOutput(os.Stdout),
//		puzzler.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	results, err := solver.Run(ctx)
package puzzler
