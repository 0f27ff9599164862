package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/wricardo/puzzler/puzzler"
)

func testFrame(part int) puzzler.Frame {
	return puzzler.Frame{Puzzle: "Screen", Part: part, Rows: []string{"#.", ".#"}}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.topics == nil {
		t.Error("Hub topics map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub(nil)

	client := &Client{
		hub:    hub,
		puzzle: "Screen",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	if !hub.topics["Screen"][client] {
		t.Error("Client was not registered for its puzzle")
	}

	if len(hub.topics["Screen"]) != 1 {
		t.Errorf("Expected 1 client, got %d", len(hub.topics["Screen"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub(nil)

	client := &Client{
		hub:    hub,
		puzzle: "Screen",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.topics["Screen"]; exists {
		t.Error("Topic should have been cleaned up after last client unregistered")
	}

	if _, ok := <-client.send; ok {
		t.Error("Client send channel should be closed")
	}
}

func TestHubMultipleClientsPerPuzzle(t *testing.T) {
	hub := NewHub(nil)

	client1 := &Client{hub: hub, puzzle: "Patrol", send: make(chan []byte, 256)}
	client2 := &Client{hub: hub, puzzle: "Patrol", send: make(chan []byte, 256)}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.topics["Patrol"]) != 2 {
		t.Errorf("Expected 2 clients, got %d", len(hub.topics["Patrol"]))
	}

	hub.unregisterClient(client1)

	if len(hub.topics["Patrol"]) != 1 {
		t.Errorf("Expected 1 client remaining, got %d", len(hub.topics["Patrol"]))
	}

	if !hub.topics["Patrol"][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastOnlyToPuzzle(t *testing.T) {
	hub := NewHub(nil)

	screen := &Client{hub: hub, puzzle: "Screen", send: make(chan []byte, 256)}
	patrol := &Client{hub: hub, puzzle: "Patrol", send: make(chan []byte, 256)}
	hub.registerClient(screen)
	hub.registerClient(patrol)

	frame := testFrame(1)
	hub.broadcastMessage(&Message{Puzzle: "Screen", Event: EventFrame, Frame: &frame})

	select {
	case data := <-screen.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != EventFrame {
			t.Errorf("Expected event %q, got %q", EventFrame, message.Event)
		}
		if diff := cmp.Diff(&frame, message.Frame); diff != "" {
			t.Errorf("frame mismatch (-want +got):\n%s", diff)
		}
	default:
		t.Error("No message queued for the Screen client")
	}

	if len(patrol.send) != 0 {
		t.Error("Patrol client should not receive Screen frames")
	}
}

func TestHubReplaysLatestFrame(t *testing.T) {
	hub := NewHub(nil)

	frame := testFrame(2)
	hub.broadcastMessage(&Message{Puzzle: "Screen", Event: EventFrame, Frame: &frame})

	late := &Client{hub: hub, puzzle: "Screen", send: make(chan []byte, 256)}
	hub.registerClient(late)

	if len(late.send) != 1 {
		t.Fatalf("Expected the latest frame to be replayed, got %d messages", len(late.send))
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)

	slow := &Client{hub: hub, puzzle: "Screen", send: make(chan []byte)}
	hub.registerClient(slow)

	frame := testFrame(1)
	hub.broadcastMessage(&Message{Puzzle: "Screen", Event: EventFrame, Frame: &frame})

	if _, exists := hub.topics["Screen"]; exists {
		t.Error("Client with a full send channel should have been dropped")
	}
}

func TestObserveQueuesFrame(t *testing.T) {
	hub := NewHub(nil)

	hub.Observe(testFrame(0))

	select {
	case message := <-hub.broadcast:
		if message.Puzzle != "Screen" {
			t.Errorf("Expected puzzle 'Screen', got %s", message.Puzzle)
		}
		if message.Frame.Part != 0 {
			t.Errorf("Expected part 0, got %d", message.Frame.Part)
		}
	default:
		t.Error("No broadcast message queued")
	}
}

func TestObserveNeverBlocks(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer+10; i++ {
			hub.Observe(testFrame(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Observe blocked on a full queue")
	}
}

func TestClientCountAfterStop(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	<-stopped

	if n := hub.ClientCount("Screen"); n != 0 {
		t.Errorf("Expected 0 clients after stop, got %d", n)
	}
}

func waitForClients(t *testing.T, hub *Hub, puzzle string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(puzzle) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients for %s, got %d", want, puzzle, hub.ClientCount(puzzle))
}

func startServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		puzzle := r.URL.Query().Get("puzzle")
		if puzzle == "" {
			puzzle = "default"
		}
		hub.ServeWS(w, r, puzzle)
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocketUpgrade(t *testing.T) {
	hub, wsURL := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?puzzle=Patrol", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, "Patrol", 1)

	conn.Close()

	waitForClients(t, hub, "Patrol", 0)
}

func TestWebSocketFrameReceive(t *testing.T) {
	hub, wsURL := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?puzzle=Screen", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, "Screen", 1)

	hub.Observe(testFrame(1))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var message Message
	if err := conn.ReadJSON(&message); err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	expected := Message{Puzzle: "Screen", Event: EventFrame, Frame: &puzzler.Frame{Puzzle: "Screen", Part: 1, Rows: []string{"#.", ".#"}}}
	if diff := cmp.Diff(expected, message); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}
