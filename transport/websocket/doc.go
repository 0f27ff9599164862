// Package websocket streams puzzle frames to browser viewers.
//
// The websocket package implements:
//   - Puzzle-aware WebSocket connections
//   - Frame broadcasting while a solver runs
//   - Replay of the latest frame to viewers that join late
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// goroutines, one reading and one writing. All hub state is owned by the
// goroutine running Hub.Run; everything else talks to it over channels.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"puzzle": "Screen", "event": "frame", "frame": {"puzzle": "Screen", "part": 1, "rows": ["#..", ".#."]}}
//
// Incoming messages are read only to detect disconnects and are discarded.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	solver, _ := puzzler.NewSolver(p, 2, puzzler.WithObserver(hub))
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("puzzle"))
//	})
package websocket
