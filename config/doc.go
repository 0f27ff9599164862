// Package config provides configuration for the puzzler tools.
//
// The config package handles:
//   - Reading dotenv files without touching the process environment
//   - Defaults for every setting
//   - Validation of parts, listen address and log level
//
// Keys:
//
//	PUZZLER_ROOT       project root used to resolve puzzle input files
//	PUZZLER_PARTS      number of puzzle parts to solve (1-3)
//	PUZZLER_ADDR       listen address of the viewer server
//	PUZZLER_LOG_LEVEL  trace, debug, info, warn or error
//	PUZZLER_DEBUG      include source locations in log lines
//
// Usage:
//
//	cfg, err := config.Load(".env", ".env.local")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	path, err := project.File(cfg.Root, "inputs/demo.txt")
//
// Command line flags take precedence; the cmd/puzzler tool applies them on
// top of the loaded values and calls Validate again.
package config
