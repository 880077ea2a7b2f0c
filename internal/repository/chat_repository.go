package repository

import (
	"context"
	"time"

	"hiretop/internal/database"
	"hiretop/internal/database/postgres"
	"hiretop/internal/domain/chat"

	"github.com/google/uuid"
)

type ChatRepository interface {
	// CreateForApplication inserts the chat of an application unless one
	// exists, and returns the stored chat either way.
	CreateForApplication(ctx context.Context, c chat.Chat) (chat.Chat, error)
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Item, error)
	TouchLastMessage(ctx context.Context, id uuid.UUID, preview string, at time.Time) error
	WithTx(tx database.Tx) ChatRepository
}

type PostgresChatRepository struct {
	db database.Querier
}

func NewPostgresChatRepository(db database.Querier) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) WithTx(tx database.Tx) ChatRepository {
	return &PostgresChatRepository{db: tx}
}

const chatSelect = `SELECT c.id, c.candidate_id, c.enterprise_id, c.application_id, c.last_message, c.last_message_at,
	c.created_at, cp.user_id, ep.user_id
	FROM chats c
	JOIN candidate_profiles cp ON cp.id = c.candidate_id
	JOIN enterprise_profiles ep ON ep.id = c.enterprise_id`

func (r *PostgresChatRepository) CreateForApplication(ctx context.Context, c chat.Chat) (chat.Chat, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chats (id, candidate_id, enterprise_id, application_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (application_id) DO NOTHING`,
		c.ID, c.CandidateID, c.EnterpriseID, c.ApplicationID,
	)
	if err != nil {
		return chat.Chat{}, err
	}
	return r.one(ctx, chatSelect+` WHERE c.application_id = $1`, c.ApplicationID)
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	return r.one(ctx, chatSelect+` WHERE c.id = $1`, id)
}

// ListForUser returns the caller's chats with the counterpart's display data
// and the caller's unread count, aggregated in a single query.
func (r *PostgresChatRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.candidate_id, c.enterprise_id, c.application_id, c.last_message, c.last_message_at,
		        c.created_at, cp.user_id, ep.user_id,
		        CASE WHEN cp.user_id = $1 THEN ep.name ELSE cp.full_name END,
		        CASE WHEN cp.user_id = $1 THEN ep.logo_url ELSE cp.photo_url END,
		        COALESCE(o.title, ''),
		        COUNT(m.id) FILTER (WHERE m.receiver_id = $1 AND NOT m.is_read)
		 FROM chats c
		 JOIN candidate_profiles cp ON cp.id = c.candidate_id
		 JOIN enterprise_profiles ep ON ep.id = c.enterprise_id
		 JOIN job_applications a ON a.id = c.application_id
		 LEFT JOIN job_offers o ON o.id = a.job_offer_id
		 LEFT JOIN messages m ON m.chat_id = c.id
		 WHERE cp.user_id = $1 OR ep.user_id = $1
		 GROUP BY c.id, cp.user_id, ep.user_id, ep.name, ep.logo_url, cp.full_name, cp.photo_url, o.title
		 ORDER BY COALESCE(c.last_message_at, c.created_at) DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Item, 0)
	for rows.Next() {
		var it chat.Item
		err := rows.Scan(
			&it.ID, &it.CandidateID, &it.EnterpriseID, &it.ApplicationID, &it.LastMessage, &it.LastMessageAt,
			&it.CreatedAt, &it.CandidateUserID, &it.EnterpriseUserID,
			&it.CounterpartName, &it.CounterpartPhotoURL, &it.JobTitle, &it.UnreadCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresChatRepository) TouchLastMessage(ctx context.Context, id uuid.UUID, preview string, at time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE chats SET last_message = $1, last_message_at = $2 WHERE id = $3`,
		preview, at, id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return chat.ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepository) one(ctx context.Context, q string, args ...any) (chat.Chat, error) {
	var c chat.Chat
	err := r.db.QueryRow(ctx, q, args...).Scan(
		&c.ID, &c.CandidateID, &c.EnterpriseID, &c.ApplicationID, &c.LastMessage, &c.LastMessageAt,
		&c.CreatedAt, &c.CandidateUserID, &c.EnterpriseUserID,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return chat.Chat{}, chat.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}
