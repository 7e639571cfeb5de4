package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

type messageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo creates a new PostgreSQL-backed MessageRepository.
func NewMessageRepo(db *sqlx.DB) port.MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Append(ctx context.Context, msg *domain.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, role, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("messageRepo.Append: %w", err)
	}
	return nil
}

// ListByConversation returns messages in insertion order; created_at ties are
// broken by id so ordering stays stable.
func (r *messageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT * FROM messages WHERE conversation_id = $1
		 ORDER BY created_at ASC, id ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("messageRepo.ListByConversation: %w", err)
	}
	return msgs, nil
}
