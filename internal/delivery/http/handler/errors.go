package handler

import (
	"errors"

	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/pkg/response"
	"hiretop/internal/pkg/validation"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var usecaseErrors = []errorMapping{
	{usecase.ErrInvalidInput, fiber.StatusBadRequest, "Bad request"},
	{usecase.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
	{usecase.ErrUnauthorized, fiber.StatusUnauthorized, "Unauthorized"},
	{usecase.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid email or password"},
	{usecase.ErrInvalidRefreshToken, fiber.StatusUnauthorized, "Invalid refresh token"},
	{usecase.ErrRefreshTokenExpired, fiber.StatusUnauthorized, "Refresh token expired"},
	{usecase.ErrEmailAlreadyRegistered, fiber.StatusConflict, "Email already registered"},
	{usecase.ErrProfileNotFound, fiber.StatusNotFound, "Profile not found"},
	{usecase.ErrProfileAlreadyExists, fiber.StatusConflict, "Profile already exists"},
	{usecase.ErrProfileRequired, fiber.StatusConflict, "Create your profile first"},
	{usecase.ErrJobOfferNotFound, fiber.StatusNotFound, "Job offer not found"},
	{usecase.ErrJobOfferClosed, fiber.StatusConflict, "Job offer is closed"},
	{usecase.ErrSkillProfileEmpty, fiber.StatusBadRequest, "Add skills to your profile to get recommendations"},
	{usecase.ErrApplicationNotFound, fiber.StatusNotFound, "Application not found"},
	{usecase.ErrAlreadyApplied, fiber.StatusConflict, "You already applied to this job offer"},
	{usecase.ErrInvalidStatusTransition, fiber.StatusConflict, "Invalid status transition"},
	{usecase.ErrChatNotFound, fiber.StatusNotFound, "Chat not found"},
	{usecase.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "File too large"},
	{usecase.ErrUnsupportedFileType, fiber.StatusUnsupportedMediaType, "Unsupported file type"},
	{usecase.ErrStorageUnavailable, fiber.StatusServiceUnavailable, response.MessageUnavailable},
}

// mapUsecaseError turns usecase sentinels into AppErrors. Validation errors
// pass through untouched; the error middleware renders them as 422.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return err
	}

	for _, m := range usecaseErrors {
		if errors.Is(err, m.target) {
			return middleware.NewAppError(m.status, m.message, nil, err)
		}
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
