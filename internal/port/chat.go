package port

import "context"

// ChatMessage is one entry of an LLM conversation context.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatModel abstracts the external LLM capability: given a prompt context,
// return text.
type ChatModel interface {
	Generate(ctx context.Context, messages []ChatMessage) (string, error)
}
