package websocket

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
)

// AlertHub fans alert payloads out to every connected operator console.
// Slow consumers are dropped rather than allowed to stall the hub.
type AlertHub struct {
	logger *logrus.Logger
	mu     sync.RWMutex
	conns  map[*websocket.Conn]chan []byte
}

func NewAlertHub(logger *logrus.Logger) *AlertHub {
	return &AlertHub{
		logger: logger,
		conns:  make(map[*websocket.Conn]chan []byte),
	}
}

func (h *AlertHub) register(conn *websocket.Conn) chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.conns[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *AlertHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast queues the payload for every connection. A consumer whose
// buffer is full misses this payload instead of blocking the caller.
func (h *AlertHub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, ch := range h.conns {
		select {
		case ch <- payload:
		default:
			h.logger.WithField("remote", conn.RemoteAddr().String()).
				Warn("alert consumer too slow, dropping payload")
		}
	}
}

func (h *AlertHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
