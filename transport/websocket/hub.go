package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/wricardo/puzzler/puzzler"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Frames queued for broadcast before new ones are dropped.
	broadcastBuffer = 256
)

// EventFrame is the event name of frame messages
const EventFrame = "frame"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The viewer is served from the same process on a local address
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	Puzzle string         `json:"puzzle"`
	Event  string         `json:"event"`
	Frame  *puzzler.Frame `json:"frame,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	puzzle string
}

type countRequest struct {
	puzzle string
	reply  chan int
}

// Hub maintains the set of active clients per puzzle and broadcasts frames
type Hub struct {
	logger hclog.Logger

	// Registered clients by puzzle name
	topics map[string]map[*Client]bool

	// Last frame sent per puzzle, replayed to new clients
	latest map[string][]byte

	// Frames waiting to be sent
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Client count queries
	counts chan countRequest

	// Closed when Run returns
	done chan struct{}
}

// NewHub creates a new WebSocket hub
func NewHub(logger hclog.Logger) *Hub {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Hub{
		logger:     logger.Named("hub"),
		topics:     make(map[string]map[*Client]bool),
		latest:     make(map[string][]byte),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		counts:     make(chan countRequest),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. It returns when ctx is cancelled, after
// closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case req := <-h.counts:
			req.reply <- len(h.topics[req.puzzle])

		case <-ctx.Done():
			for _, clients := range h.topics {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			h.logger.Debug("hub stopped")
			return
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to puzzle
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, puzzle string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		puzzle: puzzle,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// Observe queues a frame for every client watching its puzzle. Frames are
// dropped when the queue is full so that a slow viewer never stalls a solver.
func (h *Hub) Observe(frame puzzler.Frame) {
	message := &Message{
		Puzzle: frame.Puzzle,
		Event:  EventFrame,
		Frame:  &frame,
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast queue full, dropping frame", "puzzle", frame.Puzzle, "part", frame.Part)
	}
}

// ClientCount returns the number of clients watching puzzle, or 0 once the
// hub has stopped
func (h *Hub) ClientCount(puzzle string) int {
	req := countRequest{puzzle: puzzle, reply: make(chan int, 1)}
	select {
	case h.counts <- req:
		return <-req.reply
	case <-h.done:
		return 0
	}
}

// registerClient adds a client to a puzzle topic
func (h *Hub) registerClient(client *Client) {
	if h.topics[client.puzzle] == nil {
		h.topics[client.puzzle] = make(map[*Client]bool)
	}
	h.topics[client.puzzle][client] = true

	if data, ok := h.latest[client.puzzle]; ok {
		client.send <- data
	}

	h.logger.Debug("client registered", "puzzle", client.puzzle, "clients", len(h.topics[client.puzzle]))
}

// unregisterClient removes a client from a puzzle topic
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.topics[client.puzzle]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty topics
			if len(clients) == 0 {
				delete(h.topics, client.puzzle)
			}

			h.logger.Debug("client unregistered", "puzzle", client.puzzle, "clients", len(clients))
		}
	}
}

// broadcastMessage sends a message to all clients of a puzzle
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", "error", err)
		return
	}
	h.latest[message.Puzzle] = data

	if clients, ok := h.topics[message.Puzzle]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, drop it
				h.unregisterClient(client)
			}
		}
	}
}

// readPump keeps the connection alive and notices when the peer goes away
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Viewers only listen; anything they send is discarded
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "puzzle", c.puzzle, "error", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
