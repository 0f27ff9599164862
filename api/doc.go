// Package api provides HTTP REST API handlers for running puzzles.
//
// The api package implements:
//   - Puzzle listing
//   - Running a puzzle from posted lines or from its input file
//   - Map validation
//   - WebSocket upgrade for frame viewers
//
// Endpoints:
//
//   - GET /api/health - Liveness check
//   - GET /api/puzzles - List registered puzzles
//   - POST /api/puzzles/{name}/run - Solve a puzzle
//   - POST /api/validate - Validate a map
//   - GET /ws/{name} - Stream frames of a puzzle
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A run request looks like:
//
//	{
//	  "lines": ["rect 3x2", "rotate row y=0 by 4"], // optional, input file otherwise
//	  "parts": 2                                     // optional, configured default otherwise
//	}
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	server := api.NewServer(api.Registry{}, hub, cfg, logger)
//	http.ListenAndServe(cfg.Addr, server)
//
// Error Handling:
//
// Errors are returned as JSON with an appropriate HTTP status code:
//
//	{
//	  "error": "error message"
//	}
//
// Unknown puzzles answer 404, an invalid part count 400, and input or solver
// failures 422.
package api
