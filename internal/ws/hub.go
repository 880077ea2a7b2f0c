package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnMetrics receives connection lifecycle counts.
type ConnMetrics interface {
	ClientConnected()
	ClientDisconnected()
}

type directMessage struct {
	userID  uuid.UUID
	payload []byte
}

// Hub tracks live connections per user. A user may have several clients
// (phone and tablet); a push goes to all of them. Register and Unregister
// never block, before or after Run.
type Hub struct {
	clients map[uuid.UUID]map[*Client]struct{}
	direct  chan directMessage
	closed  bool
	mutex   sync.RWMutex
	logger  *zap.Logger
	metrics ConnMetrics
}

func NewHub(logger *zap.Logger, metrics ConnMetrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		direct:  make(chan directMessage, 1024),
		logger:  logger,
		metrics: metrics,
	}
}

// Run delivers queued pushes until ctx is done, then closes every client.
// Clients registered after that are closed immediately.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case msg := <-h.direct:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.logger.Warn("ws client too slow, dropping", zap.String("user_id", msg.userID.String()))
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	removed := false
	if ok {
		if _, ok := set[client]; ok {
			delete(set, client)
			close(client.send)
			removed = true
		}
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	total := h.countLocked()
	h.mutex.Unlock()

	if removed {
		if h.metrics != nil {
			h.metrics.ClientDisconnected()
		}
		h.logger.Debug("ws disconnected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.closed = true
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
			if h.metrics != nil {
				h.metrics.ClientDisconnected()
			}
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	if h.closed {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	total := h.countLocked()
	h.mutex.Unlock()

	if h.metrics != nil {
		h.metrics.ClientConnected()
	}
	h.logger.Debug("ws connected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.remove(client)
}

// SendToUser queues payload for every connection of userID. It never blocks;
// when the hub queue is full the push is dropped.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.direct <- directMessage{userID: userID, payload: payload}:
	default:
		h.logger.Warn("ws push dropped", zap.String("reason", "buffer_full"), zap.String("user_id", userID.String()))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) IsOnline(userID uuid.UUID) bool {
	if h == nil {
		return false
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID]) > 0
}
