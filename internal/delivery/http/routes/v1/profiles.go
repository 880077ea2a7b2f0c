package v1

import (
	"hiretop/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterProfiles(r fiber.Router, candidates *handler.CandidateHandler, enterprises *handler.EnterpriseHandler) {
	if r == nil {
		return
	}

	if candidates != nil {
		candidates.RegisterRoutes(r.Group("/candidates"))
	}
	if enterprises != nil {
		enterprises.RegisterRoutes(r.Group("/enterprises"))
	}
}
