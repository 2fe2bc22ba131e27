// Package ws fans simulated market ticks out to WebSocket subscribers.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"founderhq_market/metrics"
	"founderhq_market/models"
)

// Conn is the subset of *websocket.Conn the hub needs; tests substitute
// in-memory fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Snapshotter provides the current simulated market view.
type Snapshotter interface {
	Snapshot() models.Snapshot
}

// Hub tracks connected subscribers and pushes one tick frame per
// interval to each. A failed send removes only the failing subscriber;
// the rest are unaffected.
type Hub struct {
	mu     sync.Mutex
	active map[Conn]struct{}

	market   Snapshotter
	interval time.Duration
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewHub(market Snapshotter, interval time.Duration, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		active:   make(map[Conn]struct{}),
		market:   market,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 5 * time.Second,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}
}

// Connect adds a subscriber to the active set.
func (h *Hub) Connect(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.active[conn]; ok {
		return
	}
	h.active[conn] = struct{}{}
	metrics.ConnectionOpened()
}

// Disconnect removes a subscriber. Unknown or already-removed
// subscribers are a no-op.
func (h *Hub) Disconnect(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.active[conn]; !ok {
		return
	}
	delete(h.active, conn)
	metrics.ConnectionClosed()
}

// Count reports the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}

// Broadcast sends one message to every active subscriber. Failed
// subscribers are collected during the pass and removed afterwards so
// the set is not mutated while iterating it.
func (h *Hub) Broadcast(message interface{}) {
	h.mu.Lock()
	conns := make([]Conn, 0, len(h.active))
	for conn := range h.active {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	var dead []Conn
	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.logger.Debugw("Broadcast send failed, dropping subscriber", "error", err)
			metrics.IncrementBroadcastErrors()
			dead = append(dead, conn)
			continue
		}
		metrics.IncrementBroadcasts()
	}
	for _, conn := range dead {
		h.Disconnect(conn)
	}
}

// ServeHTTP upgrades the request and runs the per-connection tick loop
// until the peer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("WebSocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	h.Run(conn)
}

// Run sends one tick frame per interval to conn until the peer closes
// or a send fails. Any failure is treated as a disconnect; nothing
// escapes the loop.
func (h *Hub) Run(conn Conn) {
	h.Connect(conn)
	defer h.Disconnect(conn)

	// reader goroutine solely to observe the client-initiated close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		frame := models.TickFrame{Type: "tick", Data: h.market.Snapshot()}
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Debugw("Tick send failed, closing subscriber", "error", err)
			metrics.IncrementBroadcastErrors()
			return
		}
		metrics.IncrementBroadcasts()

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
