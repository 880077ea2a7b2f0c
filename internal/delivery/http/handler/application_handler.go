package handler

import (
	"strings"

	"hiretop/internal/delivery/http/dto"
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/domain/application"
	"hiretop/internal/domain/user"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.JobApplicationUsecase
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.JobApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterRoutes mounts /applications on r.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	candidate := middleware.RequireRole(user.RoleCandidate)
	enterprise := middleware.RequireRole(user.RoleEnterprise)

	r.Get("/mine", candidate, h.ListMine)
	r.Get("/", enterprise, h.ListForEnterprise)
	r.Patch("/:id/status", enterprise, h.UpdateStatus)
	r.Post("/:id/withdraw", candidate, h.Withdraw)
}

// RegisterJobRoutes mounts the per-offer application endpoints on the /jobs
// group.
func (h *ApplicationHandler) RegisterJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/applications", middleware.RequireRole(user.RoleCandidate), h.Apply)
	r.Get("/:id/applications", middleware.RequireRole(user.RoleEnterprise), h.ListForOffer)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	offerID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req applyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	a, err := h.uc.Apply(c.Context(), userID, offerID, req.CoverLetter)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromApplication(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(items))
}

func (h *ApplicationHandler) ListForOffer(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	offerID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListForOffer(c.Context(), userID, offerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(items))
}

func (h *ApplicationHandler) ListForEnterprise(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	status := application.Status(strings.TrimSpace(c.Query("status")))
	items, err := h.uc.ListForEnterprise(c.Context(), userID, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	status := application.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
	}

	a, err := h.uc.UpdateStatus(c.Context(), userID, id, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(a))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Withdraw(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(a))
}
