// Package puzzles holds the simulations shipped with puzzler.
package puzzles

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wricardo/puzzler/puzzler"
)

// ErrUnknownPuzzle is returned by New for names missing from the registry
var ErrUnknownPuzzle = errors.New("unknown puzzle")

var registry = map[string]func() puzzler.Puzzle{
	"demo":   func() puzzler.Puzzle { return NewDemo() },
	"screen": func() puzzler.Puzzle { return NewScreen(ScreenWidth, ScreenHeight) },
	"patrol": func() puzzler.Puzzle { return NewPatrol() },
}

// New returns a fresh instance of the named puzzle
func New(name string) (puzzler.Puzzle, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPuzzle, name)
	}
	return factory(), nil
}

// Names returns the registered puzzle names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
