// Websocket tick stream — pushes a state summary to every client after
// each tick.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The simulation is read-only over the stream; any origin may observe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maintains the set of active stream clients. One goroutine per
// client drains its send channel, so a slow reader never blocks a tick.
type Hub struct {
	mu      sync.Mutex
	clients map[*streamClient]bool
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*streamClient]bool)}
}

// Broadcast sends a JSON payload to every connected client. Clients whose
// buffers are full are dropped.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("stream payload marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) add(c *streamClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	slog.Info("stream client connected")
}

func (h *Hub) remove(c *streamClient) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	slog.Info("stream client disconnected")
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &streamClient{conn: conn, send: make(chan []byte, 16)}
	s.hub.add(client)

	// Send the current summary immediately so clients don't wait a tick.
	s.mu.Lock()
	first, _ := json.Marshal(s.summaryLocked())
	s.mu.Unlock()

	go func() {
		defer conn.Close()
		if err := conn.WriteMessage(websocket.TextMessage, first); err != nil {
			s.hub.remove(client)
			return
		}
		for payload := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.hub.remove(client)
				return
			}
		}
	}()

	// Reader goroutine: we ignore client messages but need reads to detect
	// disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.remove(client)
				return
			}
		}
	}()
}
