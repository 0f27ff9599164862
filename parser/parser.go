package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/wricardo/puzzler/grid"
)

var (
	signedPattern   = regexp.MustCompile(`[+-]?\d+`)
	unsignedPattern = regexp.MustCompile(`\d+`)
)

// ReadLines reads every line from r without line terminators
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// ReadFile reads every line of the file at path
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer f.Close()

	return ReadLines(f)
}

// Integer parses exactly one signed integer per line
func Integer(lines []string) ([]int, error) {
	numbers, err := Integers(lines)
	if err != nil {
		return nil, err
	}
	return single(numbers)
}

// Integers parses every signed integer found on each line
func Integers(lines []string) ([][]int, error) {
	return numbers(lines, signedPattern)
}

// UnsignedInteger parses exactly one unsigned integer per line
func UnsignedInteger(lines []string) ([]int, error) {
	numbers, err := UnsignedIntegers(lines)
	if err != nil {
		return nil, err
	}
	return single(numbers)
}

// UnsignedIntegers parses every unsigned integer found on each line
func UnsignedIntegers(lines []string) ([][]int, error) {
	return numbers(lines, unsignedPattern)
}

func numbers(lines []string, pattern *regexp.Regexp) ([][]int, error) {
	result := make([][]int, 0, len(lines))
	for _, line := range lines {
		// A letter anywhere means the line is not a list of numbers
		if strings.IndexFunc(line, unicode.IsLetter) >= 0 {
			return nil, fmt.Errorf("line '%s' contains non-number character(s)", line)
		}

		var values []int
		for _, s := range pattern.FindAllString(line, -1) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("failed to parse '%s' to integer: %w", s, err)
			}
			values = append(values, n)
		}
		result = append(result, values)
	}
	return result, nil
}

func single(lines [][]int) ([]int, error) {
	result := make([]int, 0, len(lines))
	for _, line := range lines {
		if len(line) != 1 {
			return nil, fmt.Errorf("exactly one integer expected, got %v", line)
		}
		result = append(result, line[0])
	}
	return result, nil
}

// Strings splits every trimmed line on sep and trims each field
func Strings(lines []string, sep string) [][]string {
	result := make([][]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(strings.TrimSpace(line), sep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		result = append(result, fields)
	}
	return result
}

// WithRegex matches every line against pattern and hands the capture groups
// to decode. A line that does not match, or a group that did not take part
// in the match, is an error.
func WithRegex[T any](lines []string, pattern string, decode func(groups []string) (T, error)) ([]T, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	decoded := make([]T, 0, len(lines))
	for _, line := range lines {
		match := re.FindStringSubmatchIndex(line)
		if match == nil {
			return nil, fmt.Errorf("failed to parse line '%s'", line)
		}

		groups := make([]string, 0, re.NumSubexp())
		for i := 1; i <= re.NumSubexp(); i++ {
			start, end := match[2*i], match[2*i+1]
			if start < 0 {
				return nil, fmt.Errorf("missing capture group at index %d in line '%s'", i-1, line)
			}
			groups = append(groups, line[start:end])
		}

		value, err := decode(groups)
		if err != nil {
			return nil, fmt.Errorf("failed to decode line '%s': %w", line, err)
		}
		decoded = append(decoded, value)
	}
	return decoded, nil
}

// Grid builds a grid with one row per line
func Grid(lines []string) (*grid.Grid, error) {
	return grid.FromStrings(lines...)
}

// GroupLines splits lines into paragraphs separated by empty lines.
// Runs of empty lines never produce empty groups.
func GroupLines(lines []string) [][]string {
	var groups [][]string
	var group []string

	for _, line := range lines {
		if line != "" {
			group = append(group, line)
			continue
		}
		if len(group) > 0 {
			groups = append(groups, group)
			group = nil
		}
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	return groups
}
