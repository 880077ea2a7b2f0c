package handler

import (
	"context"
	"net/http"
	"time"

	"hiretop/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

const healthTimeout = 2 * time.Second

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	cache   Pinger
	metrics http.Handler
}

// NewHealthHandler builds the health and metrics endpoints. cache and metrics
// may be nil.
func NewHealthHandler(db, cache Pinger, metrics http.Handler) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, metrics: metrics}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
	if h.metrics != nil {
		r.Get("/metrics", adaptor.HTTPHandler(h.metrics))
	}
}

// Health reports 503 when the database is down. A missing cache only
// degrades the reply.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	status := fiber.StatusOK
	data := map[string]string{"database": "up", "cache": "disabled"}

	if h.db == nil || h.db.Ping(ctx) != nil {
		status = fiber.StatusServiceUnavailable
		data["database"] = "down"
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "down"
		} else {
			data["cache"] = "up"
		}
	}

	return response.Success(c, status, "", data)
}
