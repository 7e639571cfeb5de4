package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

type conversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo creates a new PostgreSQL-backed ConversationRepository.
func NewConversationRepo(db *sqlx.DB) port.ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	now := time.Now().UTC()
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	conv.CreatedAt = now
	conv.UpdatedAt = now

	query := `INSERT INTO conversations (
		id, insurer, plan, bill_text, source_format, extraction_method,
		extraction_confidence, extraction_warnings, s3_bucket, s3_key,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		conv.ID, conv.Insurer, conv.Plan, conv.BillText, conv.SourceFormat,
		conv.ExtractionMethod, conv.ExtractionConfidence, conv.ExtractionWarnings,
		conv.S3Bucket, conv.S3Key, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("conversationRepo.Create: %w", err)
	}
	return nil
}

func (r *conversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.GetContext(ctx, &conv,
		"SELECT * FROM conversations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("conversationRepo.GetByID: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE conversations SET updated_at = $1 WHERE id = $2",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("conversationRepo.Touch: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

// Delete removes a conversation; messages cascade via the FK constraint.
func (r *conversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM conversations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("conversationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}
