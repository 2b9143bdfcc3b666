package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/healthara/backend/internal/storage"
)

// MockRecordStore is a mock implementation of storage.RecordStore
type MockRecordStore struct {
	mock.Mock
}

var _ storage.RecordStore = (*MockRecordStore)(nil)

func (m *MockRecordStore) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRecordStore) Write(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
