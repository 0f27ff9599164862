// Command puzzler runs grid puzzles and serves a live viewer for them.
//
// Commands:
//  1. "list" – prints the registered puzzles
//  2. "run" – solves a puzzle from its input file or from --input
//  3. "show" – prints a map file, optionally highlighting points
//  4. "validate" – checks map files for consistent rows and allowed glyphs
//  5. "serve" – runs the HTTP API and WebSocket frame stream
//  6. "mcp" – serves MCP tools over stdio, backed by the HTTP API
//
// Settings come from dotenv files (--env-file), then the PUZZLER_* environment
// variables, then flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/puzzler/api"
	"github.com/wricardo/puzzler/config"
	"github.com/wricardo/puzzler/grid"
	"github.com/wricardo/puzzler/parser"
	"github.com/wricardo/puzzler/project"
	"github.com/wricardo/puzzler/puzzler"
	"github.com/wricardo/puzzler/puzzles"
	mcptransport "github.com/wricardo/puzzler/transport/mcp"
	"github.com/wricardo/puzzler/transport/websocket"
	"github.com/wricardo/puzzler/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "puzzler"
)

var errInvalidMaps = errors.New("some maps are invalid")

// app carries the state shared by every command once flags are parsed
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	logger hclog.Logger
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(out, errOut io.Writer) *cli.Command {
	a := &app{out: out, errOut: errOut}

	return &cli.Command{
		Name:      AppName,
		Usage:     "solve grid puzzles and watch them run",
		Version:   Version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "project root used to resolve puzzle input files",
				Sources: cli.EnvVars(config.KeyRoot),
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to read, later files win",
				Value: []string{".env"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				Sources: cli.EnvVars(config.KeyLogLevel),
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the registered puzzles",
				Action: a.list,
			},
			{
				Name:      "run",
				Usage:     "solve a puzzle",
				ArgsUsage: "<puzzle>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "parts", Usage: "number of parts to solve (1-3)"},
					&cli.StringFlag{Name: "input", Usage: "read input from this file instead of the puzzle's own"},
				},
				Action: a.run,
			},
			{
				Name:      "show",
				Usage:     "print a map file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "mark", Usage: "highlight the point X,Y"},
					&cli.StringFlag{Name: "marker", Usage: "character drawn on highlighted points", Value: "*"},
				},
				Action: a.show,
			},
			{
				Name:      "validate",
				Usage:     "validate map files",
				ArgsUsage: "<file>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "glyphs", Usage: "allowed characters, any when empty"},
				},
				Action: a.validate,
			},
			{
				Name:  "serve",
				Usage: "run the HTTP API and frame stream",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address", Sources: cli.EnvVars(config.KeyAddr)},
				},
				Action: a.serve,
			},
			{
				Name:  "mcp",
				Usage: "serve MCP tools over stdio",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api", Usage: "base URL of a running puzzler API, an internal one is started otherwise"},
				},
				Action: a.mcp,
			},
		},
	}
}

// setup loads configuration, applies global flags and builds the logger
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.StringSlice("env-file")...)
	if err != nil {
		return ctx, err
	}

	if cmd.IsSet("root") {
		cfg.Root = cmd.String("root")
	} else if cfg.Root == config.Default().Root {
		// Inside a checkout, inputs resolve from the module root
		if root, err := project.FindRoot("."); err == nil {
			cfg.Root = root
		}
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = strings.ToLower(cmd.String("log-level"))
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}

	a.cfg = cfg
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:            AppName,
		Level:           hclog.LevelFromString(cfg.LogLevel),
		Output:          a.errOut,
		IncludeLocation: cfg.Debug,
	})
	a.logger.Debug("configuration loaded", "root", cfg.Root, "parts", cfg.Parts)
	return ctx, nil
}

func (a *app) list(ctx context.Context, cmd *cli.Command) error {
	for _, id := range puzzles.Names() {
		p, err := puzzles.New(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-8s %s\n", id, p.Name())
	}
	return nil
}

func (a *app) run(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected one puzzle name, got %d arguments", cmd.NArg())
	}

	p, err := puzzles.New(cmd.Args().First())
	if err != nil {
		return err
	}

	parts := a.cfg.Parts
	if cmd.IsSet("parts") {
		parts = int(cmd.Int("parts"))
	}

	solver, err := puzzler.NewSolver(p, parts,
		puzzler.WithRoot(a.cfg.Root),
		puzzler.WithOutput(a.out),
		puzzler.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	if input := cmd.String("input"); input != "" {
		lines, err := parser.ReadFile(input)
		if err != nil {
			return err
		}
		_, err = solver.RunLines(ctx, lines)
		return err
	}

	_, err = solver.Run(ctx)
	return err
}

func (a *app) show(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected one map file, got %d arguments", cmd.NArg())
	}

	lines, err := parser.ReadFile(cmd.Args().First())
	if err != nil {
		return err
	}
	g, err := parser.Grid(lines)
	if err != nil {
		return err
	}

	marks := cmd.StringSlice("mark")
	if len(marks) == 0 {
		return g.Print(a.out)
	}

	points, err := parseMarks(marks)
	if err != nil {
		return err
	}
	marker := []rune(cmd.String("marker"))
	if len(marker) != 1 {
		return fmt.Errorf("marker must be a single character, got '%s'", cmd.String("marker"))
	}
	return g.PrintHighlighted(a.out, marker[0], points)
}

// parseMarks reads points written as X,Y
func parseMarks(marks []string) ([]grid.Point, error) {
	values, err := parser.Integers(marks)
	if err != nil {
		return nil, err
	}

	points := make([]grid.Point, 0, len(values))
	for i, v := range values {
		if len(v) != 2 {
			return nil, fmt.Errorf("mark '%s' must be X,Y", marks[i])
		}
		points = append(points, grid.Point{X: v[0], Y: v[1]})
	}
	return points, nil
}

func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("expected at least one map file")
	}

	results := make([]validate.Result, 0, cmd.NArg())
	for _, file := range cmd.Args().Slice() {
		results = append(results, validate.ValidateFile(file, cmd.String("glyphs")))
	}

	if !validate.Report(a.out, results) {
		return errInvalidMaps
	}
	return nil
}

func (a *app) serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("addr") {
		a.cfg.Addr = cmd.String("addr")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(a.logger)
	go hub.Run(ctx)

	httpServer := &http.Server{
		Addr:         a.cfg.Addr,
		Handler:      api.NewServer(api.Registry{}, hub, a.cfg, a.logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", "addr", a.cfg.Addr)
		a.logger.Info("endpoints", "api", fmt.Sprintf("http://%s/api", a.cfg.Addr), "ws", fmt.Sprintf("ws://%s/ws/<puzzle>", a.cfg.Addr))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Info("shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

func (a *app) mcp(ctx context.Context, cmd *cli.Command) error {
	baseURL := strings.TrimSpace(cmd.String("api"))

	if baseURL == "" {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// Internal API on a free loopback port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to start internal HTTP server: %w", err)
		}

		hub := websocket.NewHub(a.logger)
		go hub.Run(ctx)

		httpServer := &http.Server{
			Handler: api.NewServer(api.Registry{}, hub, a.cfg, a.logger),
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				a.logger.Error("internal HTTP server error", "error", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", listener.Addr())
		a.logger.Info("MCP stdio server ready (using internal HTTP server)", "api", baseURL)
	} else {
		a.logger.Info("MCP stdio server ready (using external HTTP server)", "api", baseURL)
	}

	client := mcptransport.NewClient(baseURL, Version)
	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
