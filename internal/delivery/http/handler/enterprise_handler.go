package handler

import (
	"hiretop/internal/delivery/http/dto"
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/domain/user"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EnterpriseHandler struct {
	uc usecase.EnterpriseProfileUsecase
}

func NewEnterpriseHandler(uc usecase.EnterpriseProfileUsecase) *EnterpriseHandler {
	return &EnterpriseHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware. Any signed-in
// user may read an enterprise profile by id; only enterprises manage their own.
func (h *EnterpriseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	own := middleware.RequireRole(user.RoleEnterprise)
	r.Get("/me", own, h.GetMine)
	r.Post("/me", own, h.Create)
	r.Patch("/me", own, h.Update)
	r.Delete("/me", own, h.Delete)
	r.Get("/:id", h.Get)
}

func (h *EnterpriseHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req usecase.EnterpriseProfileInput
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.CreateProfile(c.Context(), userID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromEnterprise(p))
}

func (h *EnterpriseHandler) GetMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetMyProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEnterprise(p))
}

func (h *EnterpriseHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEnterprise(p))
}

func (h *EnterpriseHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req usecase.EnterpriseProfilePatch
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEnterprise(p))
}

func (h *EnterpriseHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProfile(c.Context(), userID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
