package handler

import (
	"strings"

	"hiretop/internal/delivery/http/dto"
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"
	ucauth "hiretop/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		return mapUsecaseError(err)
	}

	u := dto.FromUser(usr)
	return response.Created(c, dto.AuthResponse{User: &u, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	u := dto.FromUser(usr)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{User: &u, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

// Refresh takes the refresh token from the JSON body or, failing that, from
// the Authorization header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		var ok bool
		tok, ok = middleware.BearerToken(c.Get("Authorization"))
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr))
}
