package v1

import (
	"hiretop/internal/delivery/http/handler"
	"hiretop/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything mounted under /api/v1. Nil handlers are skipped.
type Handlers struct {
	Auth            *handler.AuthHandler
	Candidates      *handler.CandidateHandler
	Enterprises     *handler.EnterpriseHandler
	Jobs            *handler.JobOfferHandler
	Recommendations *handler.JobRecommendationHandler
	Applications    *handler.ApplicationHandler
	Chats           *handler.ChatHandler
	Uploads         *handler.UploadHandler
	Dashboard       *handler.DashboardHandler
}

// Register mounts the public auth routes first. Everything after the
// protected group requires a valid access token.
func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	requireAuth := authMw.Middleware()

	if h.Auth != nil {
		authGroup := r.Group("/auth")
		h.Auth.RegisterRoutes(authGroup)
		authGroup.Get("/me", requireAuth, h.Auth.Me)
	}

	protected := r.Group("", requireAuth)

	RegisterProfiles(protected, h.Candidates, h.Enterprises)
	RegisterJobs(protected.Group("/jobs"), h.Recommendations, h.Jobs, h.Applications)
	RegisterApplications(protected.Group("/applications"), h.Applications, h.Chats)

	if h.Chats != nil {
		h.Chats.RegisterRoutes(protected.Group("/chats"))
	}
	if h.Uploads != nil {
		h.Uploads.RegisterRoutes(protected.Group("/uploads"))
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(protected.Group("/dashboard"))
	}
}
