// Package grid provides the two-dimensional character grid used by puzzle
// simulations.
//
// The grid package implements:
//   - Point coordinates with direction-relative offsets
//   - Eight-way compass directions with cardinal turns and glyph parsing
//   - A fixed-shape rectangular character matrix with bounds checks
//   - Neighbor lookup and row-major positional search
//   - Shifting (lossy, default fill) and rotating (lossless) of rows and columns
//
// Core Types:
//
// Grid owns its cells; X addresses the column and Y the row. Point is not
// tied to any grid and may hold any coordinates. Direction is a closed set
// of eight headings.
//
// Usage:
//
//	g, err := grid.FromStrings(
//		"..#",
//		"^..",
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	start := g.Find('^')[0]
//	dir, _ := grid.ParseDirection('^')
//	if n, ok := g.Neighbor(start, dir); ok {
//		g.Set(n.Point, 'X')
//	}
//
//	g.RowRotateLeft(0, 1)
//	g.Print(os.Stdout)
//
// Contracts:
//
// Recoverable failures are returned as errors (empty input, Fill with a
// point outside the grid) or as a false ok value (Row, Col, Neighbor).
// Direct access with At or Set outside the grid, turning a diagonal
// direction, and shifting or rotating a missing line panic: callers are
// expected to validate with Contains or restrict themselves to Cardinal.
//
// A Grid has no internal locking and must not be shared between goroutines
// without external synchronization.
package grid
