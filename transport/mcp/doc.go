// Package mcp provides a Model Context Protocol front end for the puzzler.
//
// The Client is a thin proxy: puzzle listing, runs and map validation are
// forwarded to the REST API in package api, so agents see the same answers
// and the same frame stream as HTTP callers.
//
// MCP Tools:
//   - list_puzzles: List the registered puzzles
//   - run_puzzle: Solve a puzzle from its input file or from given lines
//   - validate_map: Validate map rows and glyphs
//   - describe_cell: Show a map cell and its neighbors, answered locally
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080", Version)
//	server.ServeStdio(client.GetMCPServer())
package mcp
