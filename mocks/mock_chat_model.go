package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimlens/internal/port"
)

// MockChatModel is a mock implementation of port.ChatModel.
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Generate(ctx context.Context, messages []port.ChatMessage) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}
