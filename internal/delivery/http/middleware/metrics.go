package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// HTTPObserver records one finished request.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Metrics labels requests by route pattern, not raw path, to keep label
// cardinality bounded. Mount it outside ErrorMiddleware so the status is
// final.
func Metrics(obs HTTPObserver) fiber.Handler {
	return func(c fiber.Ctx) error {
		if obs == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		obs.ObserveHTTP(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
