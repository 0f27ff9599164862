package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Environment keys understood by Load
const (
	KeyRoot     = "PUZZLER_ROOT"
	KeyParts    = "PUZZLER_PARTS"
	KeyAddr     = "PUZZLER_ADDR"
	KeyLogLevel = "PUZZLER_LOG_LEVEL"
	KeyDebug    = "PUZZLER_DEBUG"
)

// Validation constants
const (
	MinParts = 1
	MaxParts = 3
)

var logLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config holds the settings shared by the command line tool and the server
type Config struct {
	Root     string `json:"root"`
	Parts    int    `json:"parts"`
	Addr     string `json:"addr"`
	LogLevel string `json:"log_level"`
	Debug    bool   `json:"debug"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Root:     ".",
		Parts:    2,
		Addr:     "localhost:8080",
		LogLevel: "info",
	}
}

// Load reads dotenv files into a configuration. Files that do not exist are
// skipped; the process environment is neither read nor modified.
func Load(files ...string) (*Config, error) {
	values := make(map[string]string)
	for _, file := range files {
		env, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file '%s': %w", file, err)
		}
		// Later files override earlier ones
		for k, v := range env {
			values[k] = v
		}
	}
	return FromMap(values)
}

// FromMap builds a configuration from key/value pairs over the defaults
func FromMap(values map[string]string) (*Config, error) {
	cfg := Default()

	if v, ok := values[KeyRoot]; ok && v != "" {
		cfg.Root = v
	}
	if v, ok := values[KeyParts]; ok && v != "" {
		parts, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer, got '%s'", ErrInvalidConfig, KeyParts, v)
		}
		cfg.Parts = parts
	}
	if v, ok := values[KeyAddr]; ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := values[KeyLogLevel]; ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := values[KeyDebug]; ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a boolean, got '%s'", ErrInvalidConfig, KeyDebug, v)
		}
		cfg.Debug = debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root is required", ErrInvalidConfig)
	}
	if c.Parts < MinParts || c.Parts > MaxParts {
		return fmt.Errorf("%w: parts must be between %d and %d, got %d", ErrInvalidConfig, MinParts, MaxParts, c.Parts)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("%w: unknown log level '%s'", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
