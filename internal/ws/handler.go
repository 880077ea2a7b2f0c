package ws

import (
	"net/http"
	"strings"

	"hiretop/internal/pkg/jwt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// TokenValidator is the part of jwt.Service the upgrade handshake needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (jwt.Claims, error)
}

type Handler struct {
	hub    *Hub
	tokens TokenValidator
	logger *zap.Logger
}

func NewHandler(hub *Hub, tokens TokenValidator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, tokens: tokens, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP authenticates with an access token from ?token= or a Bearer
// header, then upgrades the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.hub == nil || h.tokens == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
			token = strings.TrimSpace(auth[7:])
		}
	}
	if token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
