package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
)

const MaxMessageLength = 4000

type Chat struct {
	ID            uuid.UUID
	CandidateID   uuid.UUID
	EnterpriseID  uuid.UUID
	ApplicationID uuid.UUID
	LastMessage   string
	LastMessageAt *time.Time
	CreatedAt     time.Time

	// User ids of both participants.
	CandidateUserID  uuid.UUID
	EnterpriseUserID uuid.UUID
}

// Counterpart returns the user id on the other side of the chat, or
// uuid.Nil when userID is not a participant.
func (c Chat) Counterpart(userID uuid.UUID) uuid.UUID {
	switch userID {
	case c.CandidateUserID:
		return c.EnterpriseUserID
	case c.EnterpriseUserID:
		return c.CandidateUserID
	default:
		return uuid.Nil
	}
}

func (c Chat) HasParticipant(userID uuid.UUID) bool {
	return userID != uuid.Nil && (userID == c.CandidateUserID || userID == c.EnterpriseUserID)
}

// Item is a chat as listed for one viewer.
type Item struct {
	Chat
	CounterpartName     string
	CounterpartPhotoURL string
	JobTitle            string
	UnreadCount         int
}

type Message struct {
	ID         uuid.UUID
	ChatID     uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}
