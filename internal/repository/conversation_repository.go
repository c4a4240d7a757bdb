package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// ConversationRepository encapsulates conversation persistence.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id int64) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error)
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	const query = `
        INSERT INTO conversations (user_id, phone, query_text, response_text, primary_intent, intent_tags, entities, category, routing)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		conversation.UserID,
		conversation.Phone,
		conversation.QueryText,
		conversation.ResponseText,
		conversation.PrimaryIntent,
		conversation.IntentTags,
		conversation.Entities,
		conversation.Category,
		conversation.Routing,
	).Scan(&conversation.ID, &conversation.CreatedAt)
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	const query = `
        SELECT id, user_id, phone, query_text, response_text, primary_intent, intent_tags, entities, category, routing, created_at
        FROM conversations WHERE id=$1`
	var conversation domain.Conversation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&conversation.ID,
		&conversation.UserID,
		&conversation.Phone,
		&conversation.QueryText,
		&conversation.ResponseText,
		&conversation.PrimaryIntent,
		&conversation.IntentTags,
		&conversation.Entities,
		&conversation.Category,
		&conversation.Routing,
		&conversation.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, phone, query_text, response_text, primary_intent, intent_tags, entities, category, routing, created_at
        FROM conversations WHERE user_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Conversation
	for rows.Next() {
		var conversation domain.Conversation
		if err := rows.Scan(
			&conversation.ID,
			&conversation.UserID,
			&conversation.Phone,
			&conversation.QueryText,
			&conversation.ResponseText,
			&conversation.PrimaryIntent,
			&conversation.IntentTags,
			&conversation.Entities,
			&conversation.Category,
			&conversation.Routing,
			&conversation.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, conversation)
	}
	return result, rows.Err()
}
