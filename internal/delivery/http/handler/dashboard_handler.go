package handler

import (
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/domain/user"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
}

// Get returns the dashboard that matches the caller's role.
func (h *DashboardHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	switch middleware.RoleFrom(c) {
	case user.RoleCandidate:
		d, err := h.uc.CandidateDashboard(c.Context(), userID)
		if err != nil {
			return mapUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, d)
	case user.RoleEnterprise:
		d, err := h.uc.EnterpriseDashboard(c.Context(), userID)
		if err != nil {
			return mapUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, d)
	default:
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}
