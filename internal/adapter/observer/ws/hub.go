package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vacuumworld/internal/app/ports"
	"vacuumworld/internal/domain/environment"
)

const (
	clientBuffer = 16
	writeTimeout = 5 * time.Second
)

type Message struct {
	Type     string               `json:"type"`
	Tick     uint64               `json:"tick"`
	Snapshot environment.Snapshot `json:"snapshot"`
}

// Hub broadcasts every published snapshot to the connected observers.
// Clients that fall behind by more than clientBuffer messages are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	nextID  uint64
	clients map[uint64]chan []byte
	last    []byte
	closed  bool
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: map[uint64]chan []byte{},
	}
}

func (h *Hub) Publish(tick uint64, snapshot environment.Snapshot) {
	b, err := json.Marshal(Message{Type: "SNAPSHOT", Tick: tick, Snapshot: snapshot})
	if err != nil {
		h.logger.Error("marshal snapshot", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.last = b
	for id, ch := range h.clients {
		select {
		case ch <- b:
		default:
			close(ch)
			delete(h.clients, id)
			h.logger.Warn("dropping slow observer", zap.Uint64("observer_id", id))
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every observer. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.clients {
		close(ch)
		delete(h.clients, id)
	}
}

func (h *Hub) register() (uint64, chan []byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, nil, false
	}
	h.nextID++
	ch := make(chan []byte, clientBuffer)
	if h.last != nil {
		ch <- h.last
	}
	h.clients[h.nextID] = ch
	return h.nextID, ch, true
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
	}
}

func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, out, ok := h.register()
		if !ok {
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(time.Second))
			return
		}
		defer h.unregister(id)
		h.logger.Info("observer connected", zap.Uint64("observer_id", id), zap.String("remote", r.RemoteAddr))

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		readDone := make(chan struct{})
		go func() {
			defer close(readDone)
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		h.writeLoop(ctx, conn, out)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		_ = conn.Close()
		<-readDone
		h.logger.Info("observer disconnected", zap.Uint64("observer_id", id))
	}
}

func (h *Hub) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-out:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
	}
}

var _ ports.SnapshotPublisher = (*Hub)(nil)
