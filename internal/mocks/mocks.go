package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/healthara/backend/internal/service"
)

// MockChatClient is a mock implementation of service.ChatClient.
// The mocked return value is streamed to onDelta as Chunks when set,
// otherwise as a single delta.
type MockChatClient struct {
	mock.Mock
	Chunks []string
}

var _ service.ChatClient = (*MockChatClient)(nil)

func (m *MockChatClient) StreamChat(ctx context.Context, req service.ChatRequest, onDelta func(string)) (string, error) {
	args := m.Called(ctx, req)
	if err := args.Error(1); err != nil {
		return "", err
	}

	full := args.String(0)
	if onDelta != nil {
		chunks := m.Chunks
		if len(chunks) == 0 && full != "" {
			chunks = []string{full}
		}
		for _, chunk := range chunks {
			onDelta(chunk)
		}
	}
	return full, nil
}
