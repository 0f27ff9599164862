// Package project resolves files relative to the project root.
//
// The root is always an explicit value handed in by the caller, usually
// taken from config.Config. FindRoot can derive one by looking for go.mod.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFile marks the project root
const ManifestFile = "go.mod"

// ErrNoRoot is returned when no directory above the start holds the manifest
var ErrNoRoot = errors.New("project root not found")

// FindRoot walks up from start to the first directory containing go.mod
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve '%s': %w", start, err)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, ManifestFile)); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above '%s'", ErrNoRoot, ManifestFile, start)
		}
		dir = parent
	}
}

// File joins rel onto root. Absolute paths are returned cleaned but otherwise
// unchanged.
func File(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), nil
	}
	if root == "" {
		return "", fmt.Errorf("%w: cannot resolve '%s' without a root", ErrNoRoot, rel)
	}
	return filepath.Join(root, rel), nil
}
