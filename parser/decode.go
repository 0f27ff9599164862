package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// after returns the trimmed text following the first occurrence of pat
func after(line, pat string) (string, error) {
	pos := strings.Index(line, pat)
	if pos < 0 {
		return "", fmt.Errorf("pattern '%s' not found in '%s'", pat, line)
	}
	return strings.TrimSpace(line[pos+len(pat):]), nil
}

// DecodeUnsigned parses the unsigned integer following pat, e.g. "Age: 42"
func DecodeUnsigned(line, pat string) (uint, error) {
	text, err := after(line, pat)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(text, 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("failed to parse '%s' after pattern '%s': %w", line, pat, err)
	}
	return uint(n), nil
}

// DecodeSigned parses the signed integer following pat, e.g. "Price: -100"
func DecodeSigned(line, pat string) (int, error) {
	text, err := after(line, pat)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("failed to parse '%s' after pattern '%s': %w", line, pat, err)
	}
	return n, nil
}

// DecodeString returns the trimmed text following pat
func DecodeString(line, pat string) (string, error) {
	return after(line, pat)
}
