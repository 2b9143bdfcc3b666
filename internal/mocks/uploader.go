package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockExportUploader is a mock of the export upload dependency used by the API
type MockExportUploader struct {
	mock.Mock
}

func (m *MockExportUploader) Upload(ctx context.Context, sessionID, filename string, data []byte) (string, string, error) {
	args := m.Called(ctx, sessionID, filename, data)
	return args.String(0), args.String(1), args.Error(2)
}
