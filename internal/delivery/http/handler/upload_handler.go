package handler

import (
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const uploadFormField = "file"

type UploadHandler struct {
	uc usecase.UploadUsecase
}

func NewUploadHandler(uc usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

func (h *UploadHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:kind", h.Upload)
}

// Upload accepts a multipart form with a single "file" part. The kind path
// segment picks the profile field the returned URL is written to.
func (h *UploadHandler) Upload(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	kind := usecase.UploadKind(c.Params("kind"))
	if !kind.Valid() {
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown upload kind", nil, nil)
	}

	fh, err := c.FormFile(uploadFormField)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(err)
	}
	defer f.Close()

	res, err := h.uc.Upload(c.Context(), userID, usecase.UploadInput{
		Kind:        kind,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, res)
}
