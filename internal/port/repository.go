package port

import (
	"context"

	"github.com/google/uuid"

	"claimlens/internal/domain"
)

// PolicyRepository defines the contract for policy-rule persistence.
type PolicyRepository interface {
	Upsert(ctx context.Context, rule *domain.PolicyRule) error
	GetByInsurerPlan(ctx context.Context, insurer, plan string) (*domain.PolicyRule, error)
	ListAll(ctx context.Context) ([]domain.PolicyRule, error)
	ListInsurers(ctx context.Context) ([]string, error)
	ListPlans(ctx context.Context, insurer string) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConversationRepository defines the contract for conversation persistence.
// Delete cascades to the conversation's messages.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository defines the contract for append-only message persistence.
// Append must be atomic and read back in insertion order.
type MessageRepository interface {
	Append(ctx context.Context, msg *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
}
