package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/puzzler/api"
	"github.com/wricardo/puzzler/config"
)

// newTestClient points a client at a real API server without a frame hub
func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.Root = t.TempDir()

	server := httptest.NewServer(api.NewServer(api.Registry{}, nil, cfg, nil))
	t.Cleanup(server.Close)

	return NewClient(server.URL, "test")
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text, result.IsError
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/", "test")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestListPuzzles(t *testing.T) {
	client := newTestClient(t)

	text, isError := callTool(t, client.handleListPuzzles, "list_puzzles", map[string]interface{}{})
	if isError {
		t.Fatalf("Expected success, got error: %s", text)
	}

	for _, want := range []string{"Puzzles (3):", "- demo: Demo", "- patrol: Patrol", "- screen: Screen (input inputs/screen.txt, streams frames)"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got:\n%s", want, text)
		}
	}
}

func TestRunPuzzle(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want []string
	}{
		{
			name: "demo with lines",
			args: map[string]interface{}{"puzzle": "demo", "lines": []interface{}{"1", "2", "3"}, "parts": float64(2)},
			want: []string{"Puzzle: Demo", "Part 1: 6", "Part 2: (not solved)"},
		},
		{
			name: "screen single part",
			args: map[string]interface{}{"puzzle": "screen", "lines": []interface{}{"rect 3x2"}, "parts": float64(1)},
			want: []string{"Puzzle: Screen", "Part 1: 6"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text, isError := callTool(t, client.handleRunPuzzle, "run_puzzle", test.args)
			if isError {
				t.Fatalf("Expected success, got error: %s", text)
			}
			for _, want := range test.want {
				if !strings.Contains(text, want) {
					t.Errorf("Expected %q in result, got:\n%s", want, text)
				}
			}
		})
	}
}

func TestRunPuzzleErrors(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing puzzle", map[string]interface{}{}, "puzzle is required"},
		{"unknown puzzle", map[string]interface{}{"puzzle": "nope", "lines": []interface{}{"1"}}, "unknown puzzle"},
		{"too many parts", map[string]interface{}{"puzzle": "demo", "lines": []interface{}{"1"}, "parts": float64(4)}, "allowed range"},
		{"fractional parts", map[string]interface{}{"puzzle": "demo", "parts": 1.5}, "whole number"},
		{"bad lines", map[string]interface{}{"puzzle": "demo", "lines": []interface{}{"1", 2}}, "lines[1]"},
		{"missing input file", map[string]interface{}{"puzzle": "demo", "parts": float64(1)}, "demo.txt"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text, isError := callTool(t, client.handleRunPuzzle, "run_puzzle", test.args)
			if !isError {
				t.Fatalf("Expected error result, got: %s", text)
			}
			if !strings.Contains(text, test.want) {
				t.Errorf("Expected %q in error, got %q", test.want, text)
			}
		})
	}
}

func TestValidateMap(t *testing.T) {
	client := newTestClient(t)

	text, isError := callTool(t, client.handleValidateMap, "validate_map", map[string]interface{}{
		"lines":  []interface{}{"..#", ".^."},
		"glyphs": ".#^",
	})
	if isError {
		t.Fatalf("Expected success, got error: %s", text)
	}
	if !strings.Contains(text, "✅ All maps are valid!") {
		t.Errorf("unexpected report:\n%s", text)
	}

	text, _ = callTool(t, client.handleValidateMap, "validate_map", map[string]interface{}{
		"lines": []interface{}{"..#", ".^"},
	})
	if !strings.Contains(text, "Inconsistent width at row 2: expected 3, got 2") {
		t.Errorf("unexpected report:\n%s", text)
	}
}

func TestDescribeCell(t *testing.T) {
	client := NewClient("http://unused", "test")
	lines := []interface{}{"abc", "def", "ghi"}

	text, isError := callTool(t, client.handleDescribeCell, "describe_cell", map[string]interface{}{
		"lines": lines, "x": float64(0), "y": float64(0),
	})
	if isError {
		t.Fatalf("Expected success, got error: %s", text)
	}

	for _, want := range []string{"Cell (0, 0): 'a'", "North     outside", "East      (1, 0) 'b'", "SouthEast (1, 1) 'e'", "South     (0, 1) 'd'"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got:\n%s", want, text)
		}
	}

	text, isError = callTool(t, client.handleDescribeCell, "describe_cell", map[string]interface{}{
		"lines": lines, "x": float64(3), "y": float64(0),
	})
	if !isError || !strings.Contains(text, "outside") {
		t.Errorf("Expected out of range error, got %q", text)
	}

	_, isError = callTool(t, client.handleDescribeCell, "describe_cell", map[string]interface{}{"lines": lines})
	if !isError {
		t.Error("Expected error without coordinates")
	}
}

func TestDescribeCellRejectsBadMaps(t *testing.T) {
	client := NewClient("http://unused", "test")

	tests := []struct {
		name  string
		lines []interface{}
		want  string
	}{
		{"ragged rows", []interface{}{"abc", "a"}, "Inconsistent width at row 2: expected 3, got 1"},
		{"empty map", []interface{}{}, "Map is empty"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text, isError := callTool(t, client.handleDescribeCell, "describe_cell", map[string]interface{}{
				"lines": test.lines, "x": float64(2), "y": float64(1),
			})
			if !isError {
				t.Fatalf("Expected error result, got: %s", text)
			}
			if !strings.Contains(text, test.want) {
				t.Errorf("Expected %q in error, got %q", test.want, text)
			}
		})
	}
}

func TestAPIErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]int{"code": 1})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test")
	text, isError := callTool(t, client.handleListPuzzles, "list_puzzles", map[string]interface{}{})
	if !isError {
		t.Fatal("Expected error result")
	}
	if text != "API error: 500" {
		t.Errorf("Expected 'API error: 500', got %q", text)
	}
}
