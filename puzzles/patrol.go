package puzzles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/puzzler/grid"
	"github.com/wricardo/puzzler/puzzler"
	"github.com/wricardo/puzzler/validate"
)

const (
	patrolFloor    = '.'
	patrolObstacle = '#'
	patrolVisited  = 'X'
	patrolGlyphs   = ".#^>v<"
)

var errNoGuard = errors.New("map has no guard")

// Patrol follows a guard who walks forward and turns right before every
// obstacle until leaving the map
type Patrol struct {
	puzzler.Base
	area    *grid.Grid
	start   grid.Point
	heading grid.Direction
	route   []grid.Point
}

// NewPatrol returns an empty Patrol
func NewPatrol() *Patrol {
	return &Patrol{}
}

// Name returns the display name
func (p *Patrol) Name() string { return "Patrol" }

// InputFile returns the sample map path
func (p *Patrol) InputFile() string { return "inputs/patrol.txt" }

// Parse reads the map and locates the single guard
func (p *Patrol) Parse(lines []string) error {
	lines = nonEmpty(lines)
	if result := validate.ValidateLines(p.Name(), lines, patrolGlyphs); !result.Valid {
		return fmt.Errorf("invalid map: %s", strings.Join(result.Errors, "; "))
	}

	area, err := grid.FromStrings(lines...)
	if err != nil {
		return err
	}

	guards := area.FindFunc(func(r rune) bool {
		_, err := grid.ParseDirection(r)
		return err == nil
	})
	switch len(guards) {
	case 0:
		return errNoGuard
	case 1:
	default:
		return fmt.Errorf("map has %d guards, expected one", len(guards))
	}

	heading, err := grid.ParseDirection(area.At(guards[0]))
	if err != nil {
		return err
	}

	p.area = area
	p.start = guards[0]
	p.heading = heading
	p.route = nil
	return nil
}

// walk moves the guard from the start until it leaves area. It returns the
// visited points in first-visit order, and false when the guard ends up
// walking in a loop.
func walk(area *grid.Grid, start grid.Point, heading grid.Direction) ([]grid.Point, bool) {
	type state struct {
		point   grid.Point
		heading grid.Direction
	}

	seen := map[state]bool{}
	visited := map[grid.Point]bool{start: true}
	route := []grid.Point{start}

	at, d := start, heading
	for {
		if seen[state{at, d}] {
			return route, false
		}
		seen[state{at, d}] = true

		next, ok := area.Neighbor(at, d)
		if !ok {
			return route, true
		}
		if area.At(next.Point) == patrolObstacle {
			d = d.Right()
			continue
		}

		at = next.Point
		if !visited[at] {
			visited[at] = true
			route = append(route, at)
		}
	}
}

// SolvePart1 returns the number of distinct cells the guard visits
func (p *Patrol) SolvePart1() (string, error) {
	if p.area == nil {
		return "", errNoGuard
	}

	route, _ := walk(p.area, p.start, p.heading)
	p.route = route
	return strconv.Itoa(len(route)), nil
}

// SolvePart2 returns the number of cells where a single new obstacle makes
// the guard walk in a loop. Only cells on the original route can change it.
func (p *Patrol) SolvePart2() (string, error) {
	if p.area == nil {
		return "", errNoGuard
	}
	if p.route == nil {
		p.route, _ = walk(p.area, p.start, p.heading)
	}

	loops := 0
	area := p.area.Clone()
	for _, candidate := range p.route[1:] {
		area.Set(candidate, patrolObstacle)
		if _, left := walk(area, p.start, p.heading); !left {
			loops++
		}
		area.Set(candidate, patrolFloor)
	}
	return strconv.Itoa(loops), nil
}

// Display returns the map with the walked route marked once part 1 ran
func (p *Patrol) Display() *grid.Grid {
	if p.area == nil {
		return nil
	}

	display := p.area.Clone()
	for _, point := range p.route {
		if point != p.start {
			display.Set(point, patrolVisited)
		}
	}
	return display
}
