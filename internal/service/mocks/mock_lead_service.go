package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	"conectaleads/internal/service"
)

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) List(ctx context.Context, f repository.LeadFilter, limit, offset int) (*service.LeadListResult, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LeadListResult), args.Error(1)
}

func (m *MockLeadService) Get(ctx context.Context, id int64) (*model.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) Create(ctx context.Context, in model.LeadInput) (*model.Lead, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) Update(ctx context.Context, id int64, in model.LeadInput) (*model.Lead, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
