package telemetry

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// streamMessage is one frame on the stats stream.
type streamMessage struct {
	Type    string          `json:"type"`
	Window  *WindowStats    `json:"window,omitempty"`
	Species []SpeciesWindow `json:"species,omitempty"`
}

type streamClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *streamClient) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Broadcaster serves window stats to websocket subscribers. One message is
// pushed per flushed window; subscribers that fail a write are dropped.
// A nil Broadcaster is valid and discards everything.
type Broadcaster struct {
	upgrader websocket.Upgrader
	listener net.Listener

	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

// NewBroadcaster starts listening on addr and serving /ws in the background.
func NewBroadcaster(addr string) (*Broadcaster, error) {
	b := &Broadcaster{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*streamClient]struct{}),
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("stream listen on %s: %w", addr, err)
	}
	b.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.handleWS)
	go func() {
		if err := http.Serve(ln, mux); err != nil {
			slog.Debug("stream server stopped", "err", err)
		}
	}()

	return b, nil
}

// Addr returns the bound listen address.
func (b *Broadcaster) Addr() string {
	if b == nil {
		return ""
	}
	return b.listener.Addr().String()
}

func (b *Broadcaster) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream upgrade failed", "err", err)
		return
	}
	client := &streamClient{conn: conn}

	b.mu.Lock()
	b.clients[client] = struct{}{}
	b.mu.Unlock()

	// Reader loop only detects disconnects; the stream is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.mu.Lock()
	delete(b.clients, client)
	b.mu.Unlock()
	conn.Close()
}

// Broadcast pushes one flushed window to all subscribers.
func (b *Broadcaster) Broadcast(stats WindowStats, species []SpeciesWindow) {
	if b == nil {
		return
	}

	b.mu.Lock()
	list := make([]*streamClient, 0, len(b.clients))
	for c := range b.clients {
		list = append(list, c)
	}
	b.mu.Unlock()

	msg := streamMessage{Type: "window", Window: &stats, Species: species}
	for _, c := range list {
		if err := c.send(msg); err != nil {
			slog.Warn("stream client dropped", "err", err)
			b.mu.Lock()
			delete(b.clients, c)
			b.mu.Unlock()
			c.conn.Close()
		}
	}
}

// Close stops the listener and disconnects all subscribers.
func (b *Broadcaster) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	for c := range b.clients {
		c.conn.Close()
	}
	b.clients = make(map[*streamClient]struct{})
	b.mu.Unlock()
	return b.listener.Close()
}
