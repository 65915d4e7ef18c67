// Package spectate publishes a read-only websocket feed of the running match.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/titanium/modes"
)

const (
	sendBuffer = 64
	writeWait  = time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Frame is one published view of the match
type Frame struct {
	MatchID string         `json:"match_id"`
	Metrics map[string]any `json:"metrics"`
	modes.Snapshot
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to connected spectators
// A spectator whose buffer is full is dropped rather than stalling the frame loop
type Hub struct {
	matchID uuid.UUID

	mu      sync.Mutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	server   *http.Server
}

// NewHub creates a hub for a fresh match id
func NewHub() *Hub {
	return &Hub{
		matchID: uuid.New(),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// MatchID identifies the match in every frame
func (h *Hub) MatchID() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.matchID
}

// NewMatch rotates the match id after a restart
func (h *Hub) NewMatch() {
	h.mu.Lock()
	h.matchID = uuid.New()
	h.mu.Unlock()
}

// Count returns the number of connected spectators
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("[SPECTATE] client connected: %s", c.conn.RemoteAddr())
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Publish serializes a frame for the snapshot and queues it to every spectator
func (h *Hub) Publish(snap modes.Snapshot, metrics map[string]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return nil
	}

	data, err := json.Marshal(Frame{MatchID: h.matchID.String(), Metrics: metrics, Snapshot: snap})
	if err != nil {
		return err
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
			log.Printf("[SPECTATE] dropped slow client: %s", c.conn.RemoteAddr())
		}
	}
	return nil
}

// ServeHTTP upgrades the request and streams frames until the peer leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[SPECTATE] upgrade error:", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards anything a spectator sends; it only detects disconnects
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
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

// Handler returns the mux serving the feed on /ws
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	return mux
}

// Start serves the feed on addr in the background
func (h *Hub) Start(addr string) {
	h.server = &http.Server{Addr: addr, Handler: h.Handler()}
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[SPECTATE] server error: %v", err)
		}
	}()
	log.Printf("[SPECTATE] listening on %s/ws", addr)
}

// Close stops the server and disconnects every spectator
func (h *Hub) Close() error {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if h.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return h.server.Shutdown(ctx)
}
