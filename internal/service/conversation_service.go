package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"claimlens/internal/domain"
	"claimlens/internal/estimate"
	"claimlens/internal/extract"
	"claimlens/internal/intent"
	"claimlens/internal/port"
)

const degradedReply = "I'm sorry, I couldn't process that question right now. Please try again in a moment, or ask about your bill total, coverage estimate, or claim timeline."

// ConversationService is the turn controller: it owns upload-to-conversation
// creation, per-conversation turn serialization, and reply generation.
type ConversationService struct {
	pipeline *extract.Pipeline
	policies *PolicyService
	convRepo port.ConversationRepository
	msgRepo  port.MessageRepository
	storage  port.ObjectStorage
	chat     port.ChatModel
	email    port.EmailSender

	bucket        string
	historyWindow int
	retryBackoff  time.Duration

	// One mutex per live conversation. TryLock failure means a turn is
	// already in flight for that conversation.
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

type ConversationServiceConfig struct {
	Bucket        string
	HistoryWindow int
	RetryBackoff  time.Duration
}

func NewConversationService(
	pipeline *extract.Pipeline,
	policies *PolicyService,
	convRepo port.ConversationRepository,
	msgRepo port.MessageRepository,
	storage port.ObjectStorage,
	chat port.ChatModel,
	email port.EmailSender,
	cfg ConversationServiceConfig,
) *ConversationService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 20
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Second
	}
	return &ConversationService{
		pipeline:      pipeline,
		policies:      policies,
		convRepo:      convRepo,
		msgRepo:       msgRepo,
		storage:       storage,
		chat:          chat,
		email:         email,
		bucket:        cfg.Bucket,
		historyWindow: cfg.HistoryWindow,
		retryBackoff:  cfg.RetryBackoff,
	}
}

// CreateFromUpload runs the extraction pipeline over an uploaded bill,
// validates the insurer/plan selection, and persists a new conversation.
// The original file is archived to object storage best effort; archival
// failure never fails the upload.
func (s *ConversationService) CreateFromUpload(ctx context.Context, fileBytes []byte, filename string, format domain.SourceFormat, insurer, plan string) (*domain.Conversation, error) {
	rule, err := s.policies.Lookup(ctx, insurer, plan)
	if err != nil {
		return nil, err
	}

	doc, err := s.pipeline.Extract(ctx, fileBytes, format)
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversation{
		ID:                   uuid.New(),
		Insurer:              rule.Insurer,
		Plan:                 rule.Plan,
		BillText:             doc.RawText,
		SourceFormat:         doc.SourceFormat,
		ExtractionMethod:     doc.Method,
		ExtractionConfidence: doc.Confidence,
		ExtractionWarnings:   doc.Warnings,
	}

	if s.storage != nil && s.bucket != "" {
		key := fmt.Sprintf("bills/%s/%s", conv.ID, filename)
		_, upErr := s.storage.Upload(ctx, port.UploadInput{
			Bucket: s.bucket,
			Key:    key,
			Body:   bytes.NewReader(fileBytes),
			Size:   int64(len(fileBytes)),
		})
		if upErr != nil {
			log.Printf("conversation: bill archival failed for %s: %v", conv.ID, upErr)
			conv.ExtractionWarnings = append(conv.ExtractionWarnings, "original file could not be archived")
		} else {
			conv.S3Bucket = s.bucket
			conv.S3Key = key
		}
	}

	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// Get returns a conversation with its full message history.
func (s *ConversationService) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	msgs, err := s.msgRepo.ListByConversation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	conv.Messages = msgs
	return conv, nil
}

// Delete removes the conversation, its messages, and its archived file.
func (s *ConversationService) Delete(ctx context.Context, id uuid.UUID) error {
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.convRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.locks.Delete(id)
	if s.storage != nil && conv.S3Bucket != "" && conv.S3Key != "" {
		if err := s.storage.Delete(ctx, conv.S3Bucket, conv.S3Key); err != nil {
			log.Printf("conversation: archived file cleanup failed for %s: %v", id, err)
		}
	}
	return nil
}

// SendTurn processes one user turn. Turns on the same conversation are
// serialized: a second concurrent turn fails fast with ErrConversationBusy
// rather than queueing. The user message is persisted before any reply work,
// so it survives downstream failures.
func (s *ConversationService) SendTurn(ctx context.Context, id uuid.UUID, userText string) (*domain.Message, error) {
	if userText == "" {
		return nil, domain.ErrEmptyMessage
	}

	mu := s.lockFor(id)
	if !mu.TryLock() {
		return nil, domain.ErrConversationBusy
	}
	defer mu.Unlock()

	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rule, err := s.policies.Lookup(ctx, conv.Insurer, conv.Plan)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: id,
		Role:           domain.RoleUser,
		Content:        userText,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.msgRepo.Append(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	reply := s.generateReply(ctx, conv, rule, userText)

	assistantMsg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: id,
		Role:           domain.RoleAssistant,
		Content:        reply,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.msgRepo.Append(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}
	if err := s.convRepo.Touch(ctx, id); err != nil {
		log.Printf("conversation: touch failed for %s: %v", id, err)
	}
	return assistantMsg, nil
}

func (s *ConversationService) generateReply(ctx context.Context, conv *domain.Conversation, rule *domain.PolicyRule, userText string) string {
	if isGreeting(userText) {
		return greetingReply(conv.BillText)
	}

	in := intent.Classify(userText)
	if intent.NeedsEstimate(in) {
		est := estimate.Estimate(conv.BillText, rule, in)
		return BuildReply(in, est, rule, conv.BillText)
	}
	return s.generateGrounded(ctx, conv, rule, userText)
}

// generateGrounded asks the LLM, retrying once after a short backoff. If both
// attempts fail the turn still succeeds with a degraded apology reply.
func (s *ConversationService) generateGrounded(ctx context.Context, conv *domain.Conversation, rule *domain.PolicyRule, userText string) string {
	messages := []port.ChatMessage{{Role: "system", Content: BuildSystemPrompt(rule, conv.BillText)}}

	history, err := s.msgRepo.ListByConversation(ctx, conv.ID)
	if err != nil {
		log.Printf("conversation: history load failed for %s: %v", conv.ID, err)
	}
	// The current user message is already persisted, so it comes back as the
	// tail of the history. Drop it there; it is appended once below.
	if n := len(history); n > 0 && history[n-1].Role == domain.RoleUser && history[n-1].Content == userText {
		history = history[:n-1]
	}
	if len(history) > s.historyWindow {
		history = history[len(history)-s.historyWindow:]
	}
	for _, m := range history {
		messages = append(messages, port.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, port.ChatMessage{Role: "user", Content: userText})

	reply, err := s.chat.Generate(ctx, messages)
	if err != nil {
		log.Printf("conversation: generate failed for %s, retrying: %v", conv.ID, err)
		select {
		case <-ctx.Done():
			return degradedReply
		case <-time.After(s.retryBackoff):
		}
		reply, err = s.chat.Generate(ctx, messages)
		if err != nil {
			log.Printf("conversation: generate retry failed for %s: %v", conv.ID, err)
			return degradedReply
		}
	}
	return reply
}

// ShareEstimate emails the breakdown summary for a conversation.
func (s *ConversationService) ShareEstimate(ctx context.Context, id uuid.UUID, toEmail string) error {
	if s.email == nil {
		return fmt.Errorf("share estimate: no email sender configured")
	}
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rule, err := s.policies.Lookup(ctx, conv.Insurer, conv.Plan)
	if err != nil {
		return err
	}
	est := estimate.Estimate(conv.BillText, rule, intent.IntentBreakdown)
	body := BuildBreakdown(est, rule, conv.BillText)
	subject := fmt.Sprintf("Coverage estimate for your %s %s claim", rule.Insurer, rule.Plan)
	if err := s.email.SendEstimateEmail(ctx, toEmail, subject, body); err != nil {
		return fmt.Errorf("share estimate: %w", err)
	}
	return nil
}

func (s *ConversationService) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
