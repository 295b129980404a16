package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

type MockImportBatchRepository struct {
	mock.Mock
}

func (m *MockImportBatchRepository) Create(ctx context.Context, b *model.ImportBatch) (*model.ImportBatch, error) {
	args := m.Called(ctx, b)
	if f, ok := args.Get(0).(func(context.Context, *model.ImportBatch) *model.ImportBatch); ok {
		return f(ctx, b), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportBatch), args.Error(1)
}

func (m *MockImportBatchRepository) UpdateResult(ctx context.Context, id, status string, leadCount int, errMsg *string) error {
	args := m.Called(ctx, id, status, leadCount, errMsg)
	return args.Error(0)
}

func (m *MockImportBatchRepository) FindByID(ctx context.Context, id string) (*model.ImportBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportBatch), args.Error(1)
}

func (m *MockImportBatchRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ImportBatch], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ImportBatch]), args.Error(1)
}
