package dto

import (
	"time"

	"hiretop/internal/domain/chat"

	"github.com/google/uuid"
)

type ChatResponse struct {
	ID            uuid.UUID  `json:"id"`
	CandidateID   uuid.UUID  `json:"candidate_id"`
	EnterpriseID  uuid.UUID  `json:"enterprise_id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ChatItemResponse struct {
	ChatResponse
	CounterpartName     string `json:"counterpart_name"`
	CounterpartPhotoURL string `json:"counterpart_photo_url"`
	JobTitle            string `json:"job_title"`
	UnreadCount         int    `json:"unread_count"`
}

type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	ChatID     uuid.UUID `json:"chat_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromChat(c chat.Chat) ChatResponse {
	return ChatResponse{
		ID:            c.ID,
		CandidateID:   c.CandidateID,
		EnterpriseID:  c.EnterpriseID,
		ApplicationID: c.ApplicationID,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

func FromChatItems(items []chat.Item) []ChatItemResponse {
	out := make([]ChatItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ChatItemResponse{
			ChatResponse:        FromChat(it.Chat),
			CounterpartName:     it.CounterpartName,
			CounterpartPhotoURL: it.CounterpartPhotoURL,
			JobTitle:            it.JobTitle,
			UnreadCount:         it.UnreadCount,
		})
	}
	return out
}

func FromMessage(m chat.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func FromMessages(items []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromMessage(m))
	}
	return out
}
