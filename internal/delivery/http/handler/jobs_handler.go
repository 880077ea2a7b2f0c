package handler

import (
	"strings"

	"hiretop/internal/delivery/http/dto"
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/domain/job"
	"hiretop/internal/domain/user"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobOfferHandler struct {
	uc usecase.JobOfferUsecase
}

func NewJobOfferHandler(uc usecase.JobOfferUsecase) *JobOfferHandler {
	return &JobOfferHandler{uc: uc}
}

func (h *JobOfferHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	owner := middleware.RequireRole(user.RoleEnterprise)
	r.Get("/", h.List)
	r.Get("/mine", owner, h.ListMine)
	r.Post("/", owner, h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", owner, h.Update)
	r.Post("/:id/close", owner, h.Close)
	r.Delete("/:id", owner, h.Delete)
}

// List serves GET /jobs?location=&skill=&contract_type=&enterprise_id=&status=&limit=&offset=
func (h *JobOfferHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultJobListLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	f := job.Filter{
		Location:     strings.TrimSpace(c.Query("location")),
		Skill:        strings.TrimSpace(c.Query("skill")),
		ContractType: job.ContractType(strings.TrimSpace(c.Query("contract_type"))),
		Status:       job.Status(strings.TrimSpace(c.Query("status"))),
		Limit:        limit,
		Offset:       offset,
	}
	if raw := strings.TrimSpace(c.Query("enterprise_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid enterprise_id", nil, err)
		}
		f.EnterpriseID = id
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Page(c, dto.FromJobOffers(items), limit, offset, len(items))
}

func (h *JobOfferHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultJobListLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	items, err := h.uc.ListMine(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Page(c, dto.FromJobOffers(items), limit, offset, len(items))
}

func (h *JobOfferHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	o, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobOffer(o))
}

func (h *JobOfferHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req usecase.JobOfferInput
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	o, err := h.uc.Create(c.Context(), userID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromJobOffer(o))
}

func (h *JobOfferHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req usecase.JobOfferPatch
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	o, err := h.uc.Update(c.Context(), userID, id, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobOffer(o))
}

func (h *JobOfferHandler) Close(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	o, err := h.uc.Close(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobOffer(o))
}

func (h *JobOfferHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
