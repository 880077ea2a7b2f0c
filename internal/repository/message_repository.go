package repository

import (
	"context"
	"time"

	"hiretop/internal/database"
	"hiretop/internal/domain/chat"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m chat.Message) (chat.Message, error)
	// ListByChat returns up to limit messages older than before (all when
	// before is nil), oldest first.
	ListByChat(ctx context.Context, chatID uuid.UUID, before *time.Time, limit int) ([]chat.Message, error)
	MarkRead(ctx context.Context, chatID uuid.UUID, receiverID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int, error)
	WithTx(tx database.Tx) MessageRepository
}

type PostgresMessageRepository struct {
	db database.Querier
}

func NewPostgresMessageRepository(db database.Querier) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) WithTx(tx database.Tx) MessageRepository {
	return &PostgresMessageRepository{db: tx}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	var out chat.Message
	err := r.db.QueryRow(ctx,
		`INSERT INTO messages (id, chat_id, sender_id, receiver_id, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, chat_id, sender_id, receiver_id, content, is_read, created_at`,
		m.ID, m.ChatID, m.SenderID, m.ReceiverID, m.Content,
	).Scan(&out.ID, &out.ChatID, &out.SenderID, &out.ReceiverID, &out.Content, &out.IsRead, &out.CreatedAt)
	if err != nil {
		return chat.Message{}, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID, before *time.Time, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var (
		rows database.Rows
		err  error
	)
	if before == nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, chat_id, sender_id, receiver_id, content, is_read, created_at FROM (
			     SELECT * FROM messages WHERE chat_id = $1 ORDER BY created_at DESC LIMIT $2
			 ) page ORDER BY created_at ASC`,
			chatID, limit,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, chat_id, sender_id, receiver_id, content, is_read, created_at FROM (
			     SELECT * FROM messages WHERE chat_id = $1 AND created_at < $2 ORDER BY created_at DESC LIMIT $3
			 ) page ORDER BY created_at ASC`,
			chatID, *before, limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, chatID uuid.UUID, receiverID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE chat_id = $1 AND receiver_id = $2 AND NOT is_read`,
		chatID, receiverID,
	)
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read`,
		receiverID,
	).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
