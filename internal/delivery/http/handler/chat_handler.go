package handler

import (
	"hiretop/internal/delivery/http/dto"
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/pkg/response"
	"hiretop/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// RegisterRoutes mounts /chats on r. Both roles may chat; participation is
// checked per chat.
func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListChats)
	r.Get("/unread-count", h.UnreadCount)
	r.Get("/:id/messages", h.ListMessages)
	r.Post("/:id/messages", h.SendMessage)
	r.Post("/:id/read", h.MarkRead)
}

// RegisterApplicationRoutes mounts the chat opener on the /applications group.
func (h *ChatHandler) RegisterApplicationRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/chat", h.OpenChat)
}

func (h *ChatHandler) OpenChat(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	applicationID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	ch, err := h.uc.OpenChat(c.Context(), userID, applicationID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromChat(ch))
}

func (h *ChatHandler) ListChats(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListChats(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromChatItems(items))
}

func (h *ChatHandler) SendMessage(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	chatID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req usecase.SendMessageInput
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	m, err := h.uc.SendMessage(c.Context(), userID, chatID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromMessage(m))
}

// ListMessages serves GET /chats/:id/messages?limit=&before=<RFC3339>.
func (h *ChatHandler) ListMessages(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	chatID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultMessagePageSize)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	before, err := parseQueryTime(c, "before")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid before", nil, err)
	}

	items, err := h.uc.ListMessages(c.Context(), userID, chatID, limit, before)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Page(c, dto.FromMessages(items), limit, 0, len(items))
}

func (h *ChatHandler) MarkRead(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	chatID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	n, err := h.uc.MarkRead(c.Context(), userID, chatID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"marked": n})
}

func (h *ChatHandler) UnreadCount(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	n, err := h.uc.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"unread": n})
}
