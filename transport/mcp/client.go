package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/puzzler/api"
	"github.com/wricardo/puzzler/grid"
	"github.com/wricardo/puzzler/parser"
	"github.com/wricardo/puzzler/puzzler"
	"github.com/wricardo/puzzler/validate"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL, version string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer(version)
	return c
}

func (c *Client) initMCPServer(version string) {
	c.mcpServer = server.NewMCPServer(
		"Puzzler",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Puzzler - MCP Interface

This is a thin client that proxies puzzle runs to the REST API server.

AVAILABLE TOOLS:
- list_puzzles: List the registered puzzles
- run_puzzle: Solve a puzzle from its input file or from the given lines
- validate_map: Check that map rows have equal width and allowed glyphs
- describe_cell: Show the character at X,Y of a map and its eight neighbors

Coordinates are zero based: X is the column, Y the row, and Y grows downward.`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List the registered puzzles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_puzzle",
		Description: "Solve a puzzle and return the answer of each part",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle id as shown by list_puzzles",
				},
				"lines": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Input lines (optional, the puzzle input file otherwise)",
				},
				"parts": map[string]interface{}{
					"type":        "number",
					"description": "Number of parts to solve, 1 to 3 (optional)",
				},
			},
			Required: []string{"puzzle"},
		},
	}, c.handleRunPuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_map",
		Description: "Validate a character map",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"lines": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Map rows",
				},
				"glyphs": map[string]interface{}{
					"type":        "string",
					"description": "Allowed characters (optional, any when empty)",
				},
			},
			Required: []string{"lines"},
		},
	}, c.handleValidateMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe a map cell and its neighbors",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"lines": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Map rows",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Column",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Row",
				},
			},
			Required: []string{"lines", "x", "y"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// stringList reads an array argument, nil when absent
func stringList(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case []string:
		return v, nil
	case []interface{}:
		lines := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			lines = append(lines, s)
		}
		return lines, nil
	}
	return nil, fmt.Errorf("%s must be an array of strings", key)
}

// number reads a numeric argument; JSON numbers arrive as float64
func number(args map[string]interface{}, key string) (int, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	}
	return 0, false, fmt.Errorf("%s must be a number", key)
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Puzzles []api.PuzzleInfo `json:"puzzles"`
		Count   int              `json:"count"`
	}
	if err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Puzzles (%d):\n", resp.Count)
	for _, p := range resp.Puzzles {
		fmt.Fprintf(&b, "- %s: %s (input %s", p.ID, p.Name, p.InputFile)
		if p.Display {
			b.WriteString(", streams frames")
		}
		b.WriteString(")\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleRunPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	name, _ := args["puzzle"].(string)
	if name == "" {
		return mcp.NewToolResultError("puzzle is required"), nil
	}

	lines, err := stringList(args, "lines")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parts, _, err := number(args, "parts")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp api.RunResponse
	err = c.apiCall(ctx, "POST", "/api/puzzles/"+name+"/run", api.RunRequest{Lines: lines, Parts: parts}, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRun(resp)), nil
}

func (c *Client) handleValidateMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	lines, err := stringList(args, "lines")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	glyphs, _ := args["glyphs"].(string)

	var result validate.Result
	err = c.apiCall(ctx, "POST", "/api/validate", api.ValidateRequest{Name: "map", Lines: lines, Glyphs: glyphs}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	validate.Report(&b, []validate.Result{result})
	return mcp.NewToolResultText(b.String()), nil
}

// handleDescribeCell works on the given map directly, the API has no cell endpoint
func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	lines, err := stringList(args, "lines")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x, okX, err := number(args, "x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, okY, err := number(args, "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	if check := validate.ValidateLines("describe_cell", lines, ""); !check.Valid {
		return mcp.NewToolResultError(strings.Join(check.Errors, "\n")), nil
	}

	g, err := parser.Grid(lines)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p := grid.Point{X: x, Y: y}
	if !g.Contains(p) {
		return mcp.NewToolResultError(fmt.Sprintf("%v is outside the %dx%d map", p, g.Rows(), g.Cols())), nil
	}

	return mcp.NewToolResultText(formatCell(g, p)), nil
}

func formatRun(resp api.RunResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Puzzle: %s\n", resp.Puzzle)
	for _, r := range resp.Results {
		answer := r.Answer
		if answer == puzzler.NotSolved {
			answer = "(not solved)"
		}
		fmt.Fprintf(&b, "Part %d: %s\n", r.Part, answer)
	}
	return b.String()
}

func formatCell(g *grid.Grid, p grid.Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cell %v: '%c'\n", p, g.At(p))
	b.WriteString("Neighbors:\n")
	for _, d := range grid.All {
		n, ok := g.Neighbor(p, d)
		if !ok {
			fmt.Fprintf(&b, "  %-9s outside\n", d)
			continue
		}
		fmt.Fprintf(&b, "  %-9s %v '%c'\n", d, n.Point, g.At(n.Point))
	}
	return b.String()
}
