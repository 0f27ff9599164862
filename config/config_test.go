package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeEnv(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Parts != 2 {
		t.Errorf("Expected 2 parts, got %d", cfg.Parts)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	base := writeEnv(t, dir, ".env", "PUZZLER_ROOT=/srv/puzzles\nPUZZLER_PARTS=3\nPUZZLER_LOG_LEVEL=DEBUG\n")
	local := writeEnv(t, dir, ".env.local", "PUZZLER_ADDR=:9090\nPUZZLER_PARTS=1\nPUZZLER_DEBUG=true\n")

	cfg, err := Load(base, local, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expected := &Config{
		Root:     "/srv/puzzles",
		Parts:    1,
		Addr:     ":9090",
		LogLevel: "debug",
		Debug:    true,
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDoesNotTouchEnvironment(t *testing.T) {
	t.Setenv(KeyRoot, "")
	path := writeEnv(t, t.TempDir(), ".env", "PUZZLER_ROOT=/from/file\n")

	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv(KeyRoot); got != "" {
		t.Errorf("Load should not set %s, got %q", KeyRoot, got)
	}
}

func TestLoadNoFiles(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestFromMapInvalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"parts not a number", map[string]string{KeyParts: "two"}},
		{"too few parts", map[string]string{KeyParts: "0"}},
		{"too many parts", map[string]string{KeyParts: "4"}},
		{"unknown level", map[string]string{KeyLogLevel: "loud"}},
		{"debug not a bool", map[string]string{KeyDebug: "maybe"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromMap(test.values)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Root = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty root: expected ErrInvalidConfig, got %v", err)
	}

	cfg = Default()
	cfg.Addr = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty addr: expected ErrInvalidConfig, got %v", err)
	}
}
