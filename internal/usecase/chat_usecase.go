package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hiretop/internal/database"
	"hiretop/internal/domain/application"
	"hiretop/internal/domain/chat"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/pkg/validation"
	"hiretop/internal/repository"
	"hiretop/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 100
	lastMessagePreviewLen  = 120
)

type SendMessageInput struct {
	Content string `json:"content" validate:"notblank,max=4000"`
}

// MessageEvent is pushed to the receiver of a new message.
type MessageEvent struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatUsecase interface {
	OpenChat(ctx context.Context, userID, applicationID uuid.UUID) (chat.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]chat.Item, error)
	SendMessage(ctx context.Context, userID, chatID uuid.UUID, in SendMessageInput) (chat.Message, error)
	ListMessages(ctx context.Context, userID, chatID uuid.UUID, limit int, before *time.Time) ([]chat.Message, error)
	MarkRead(ctx context.Context, userID, chatID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type Chat struct {
	chats        repository.ChatRepository
	messages     repository.MessageRepository
	applications repository.JobApplicationRepository
	enterprises  repository.EnterpriseProfileRepository
	tx           database.Transactor
	notifier     Notifier
	events       EventRecorder
	logger       *zap.Logger
}

type ChatDeps struct {
	Chats        repository.ChatRepository
	Messages     repository.MessageRepository
	Applications repository.JobApplicationRepository
	Enterprises  repository.EnterpriseProfileRepository
	Tx           database.Transactor
	Notifier     Notifier
	Events       EventRecorder
	Logger       *zap.Logger
}

func NewChatUsecase(d ChatDeps) *Chat {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chat{
		chats:        d.Chats,
		messages:     d.Messages,
		applications: d.Applications,
		enterprises:  d.Enterprises,
		tx:           d.Tx,
		notifier:     notifierOrNoop(d.Notifier),
		events:       recorderOrNoop(d.Events),
		logger:       logger,
	}
}

// OpenChat returns the chat attached to an application, creating it on first
// use. Only the candidate and the enterprise of the application may open it.
func (u *Chat) OpenChat(ctx context.Context, userID, applicationID uuid.UUID) (chat.Chat, error) {
	a, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return chat.Chat{}, ErrApplicationNotFound
		}
		return chat.Chat{}, ErrInternal
	}

	if userID != a.CandidateUser {
		ent, err := u.enterprises.GetByID(ctx, a.EnterpriseID)
		if err != nil || ent.UserID != userID {
			return chat.Chat{}, ErrForbidden
		}
	}

	c, err := u.chats.CreateForApplication(ctx, chat.Chat{
		ID:            uuid.New(),
		CandidateID:   a.CandidateID,
		EnterpriseID:  a.EnterpriseID,
		ApplicationID: a.ID,
	})
	if err != nil {
		u.logger.Error("open chat failed", zap.String("application_id", applicationID.String()), zap.Error(err))
		return chat.Chat{}, ErrInternal
	}
	return c, nil
}

func (u *Chat) ListChats(ctx context.Context, userID uuid.UUID) ([]chat.Item, error) {
	items, err := u.chats.ListForUser(ctx, userID)
	if err != nil {
		u.logger.Error("list chats failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// SendMessage stores the message and the chat preview in one transaction,
// then pushes the message to the receiver.
func (u *Chat) SendMessage(ctx context.Context, userID, chatID uuid.UUID, in SendMessageInput) (chat.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(in); err != nil {
		return chat.Message{}, err
	}

	c, err := u.participantChat(ctx, userID, chatID)
	if err != nil {
		return chat.Message{}, err
	}

	var msg chat.Message
	err = u.tx.WithinTx(ctx, func(tx database.Tx) error {
		created, err := u.messages.WithTx(tx).Create(ctx, chat.Message{
			ID:         uuid.New(),
			ChatID:     c.ID,
			SenderID:   userID,
			ReceiverID: c.Counterpart(userID),
			Content:    in.Content,
		})
		if err != nil {
			return err
		}
		msg = created
		return u.chats.WithTx(tx).TouchLastMessage(ctx, c.ID, preview(in.Content), created.CreatedAt)
	})
	if err != nil {
		u.logger.Error("send message failed", zap.String("chat_id", chatID.String()), zap.Error(err))
		return chat.Message{}, ErrInternal
	}

	u.events.Event(metrics.EventMessageSent)
	u.notifier.Notify(msg.ReceiverID, ws.EventMessage, MessageEvent{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
	return msg, nil
}

func (u *Chat) ListMessages(ctx context.Context, userID, chatID uuid.UUID, limit int, before *time.Time) ([]chat.Message, error) {
	if limit == 0 {
		limit = DefaultMessagePageSize
	}
	if limit < 1 || limit > MaxMessagePageSize {
		return nil, ErrInvalidInput
	}

	if _, err := u.participantChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	items, err := u.messages.ListByChat(ctx, chatID, before, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Chat) MarkRead(ctx context.Context, userID, chatID uuid.UUID) (int64, error) {
	if _, err := u.participantChat(ctx, userID, chatID); err != nil {
		return 0, err
	}
	n, err := u.messages.MarkRead(ctx, chatID, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func (u *Chat) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := u.messages.CountUnread(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func (u *Chat) participantChat(ctx context.Context, userID, chatID uuid.UUID) (chat.Chat, error) {
	c, err := u.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return chat.Chat{}, ErrChatNotFound
		}
		return chat.Chat{}, ErrInternal
	}
	if !c.HasParticipant(userID) {
		return chat.Chat{}, ErrForbidden
	}
	return c, nil
}

func preview(content string) string {
	r := []rune(content)
	if len(r) <= lastMessagePreviewLen {
		return content
	}
	return string(r[:lastMessagePreviewLen])
}
