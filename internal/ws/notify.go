package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventMessage           = "message"
	EventApplicationStatus = "application_status"
)

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
}

// Notifier turns domain events into pushes on the hub.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) Notify(userID uuid.UUID, eventType string, payload interface{}) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		n.logger.Error("ws event encode failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	n.hub.SendToUser(userID, b)
}
