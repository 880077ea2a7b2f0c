package usecase

import (
	"errors"

	ucauth "hiretop/internal/usecase/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrForbidden    = errors.New("forbidden")

	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrEmailAlreadyRegistered = ucauth.ErrEmailAlreadyRegistered
	ErrInvalidCredentials     = ucauth.ErrInvalidCredentials

	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrProfileRequired      = errors.New("profile required")

	ErrJobOfferNotFound  = errors.New("job offer not found")
	ErrJobOfferClosed    = errors.New("job offer closed")
	ErrSkillProfileEmpty = errors.New("skill profile empty")

	ErrApplicationNotFound     = errors.New("application not found")
	ErrAlreadyApplied          = errors.New("already applied")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	ErrChatNotFound = errors.New("chat not found")

	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
