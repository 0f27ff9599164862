// Package validate checks puzzle map files before they are loaded into a grid.
// It checks:
//   - The input has at least one row and the first row is not empty
//   - Every row has the width of the first row
//   - Every character belongs to the allowed glyph set, when one is given
//
// grid.New trusts its caller on row widths; running maps through this package
// first is how the tools catch ragged input.
package validate

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/puzzler/grid"
	"github.com/wricardo/puzzler/parser"
)

// Result captures the outcome of validating a single map.
// If Valid is true, Errors contains informational messages prefixed with a
// check mark; otherwise it accumulates the validation errors that were found.
type Result struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateFile reads a map file and validates it
func ValidateFile(path, glyphs string) Result {
	lines, err := parser.ReadFile(path)
	if err != nil {
		return Result{
			File:   filepath.Base(path),
			Valid:  false,
			Errors: []string{fmt.Sprintf("Failed to read file: %v", err)},
		}
	}
	return ValidateLines(filepath.Base(path), lines, glyphs)
}

// ValidateLines validates a map given as lines. An empty glyphs string allows
// every character.
func ValidateLines(name string, lines []string, glyphs string) Result {
	result := Result{
		File:   name,
		Valid:  true,
		Errors: []string{},
	}

	if len(lines) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Map is empty")
		return result
	}

	width := len([]rune(lines[0]))
	if width == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "First row is empty")
		return result
	}

	allowed := make(map[rune]bool)
	for _, r := range glyphs {
		allowed[r] = true
	}

	for i, line := range lines {
		row := []rune(line)
		if len(row) != width {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent width at row %d: expected %d, got %d", i+1, width, len(row)))
		}

		if len(allowed) == 0 {
			continue
		}
		for j, r := range row {
			if !allowed[r] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", r, i+1, j+1))
			}
		}
	}

	if !result.Valid {
		return result
	}

	g, err := grid.FromStrings(lines...)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Add informational data
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", g.Rows(), g.Cols()))
	for _, r := range distinct(lines) {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ '%c': %d", r, g.Count(r)))
	}
	return result
}

func distinct(lines []string) []rune {
	seen := make(map[rune]bool)
	var runes []rune
	for _, line := range lines {
		for _, r := range line {
			if !seen[r] {
				seen[r] = true
				runes = append(runes, r)
			}
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// Report prints a concise report for every result and returns true when all
// of them are valid
func Report(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All maps are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some maps have errors")
	}
	return allValid
}
