package v1

import (
	"hiretop/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts /jobs. Fixed segments like /recommended go before the
// /:id routes.
func RegisterJobs(r fiber.Router, recommendations *handler.JobRecommendationHandler, jobs *handler.JobOfferHandler, applications *handler.ApplicationHandler) {
	if r == nil {
		return
	}

	if recommendations != nil {
		recommendations.RegisterRoutes(r)
	}
	if jobs != nil {
		jobs.RegisterRoutes(r)
	}
	if applications != nil {
		applications.RegisterJobRoutes(r)
	}
}

func RegisterApplications(r fiber.Router, applications *handler.ApplicationHandler, chats *handler.ChatHandler) {
	if r == nil {
		return
	}

	if applications != nil {
		applications.RegisterRoutes(r)
	}
	if chats != nil {
		chats.RegisterApplicationRoutes(r)
	}
}
