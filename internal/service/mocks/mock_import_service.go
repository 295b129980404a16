package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"conectaleads/internal/model"
	"conectaleads/internal/service"
)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, r io.Reader, filename string, size int64) (*service.ImportResult, error) {
	args := m.Called(ctx, r, filename, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) Template(w io.Writer) error {
	args := m.Called(w)
	if s, ok := args.Get(0).(string); ok {
		_, _ = io.WriteString(w, s)
		return args.Error(1)
	}
	return args.Error(0)
}

func (m *MockImportService) List(ctx context.Context, limit, offset int) (*service.ImportListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportListResult), args.Error(1)
}

func (m *MockImportService) Get(ctx context.Context, id string) (*model.ImportBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportBatch), args.Error(1)
}

func (m *MockImportService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockImportService) Preview(ctx context.Context, id string) ([]model.ImportedLead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ImportedLead), args.Error(1)
}
