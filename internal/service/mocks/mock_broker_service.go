package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

type MockBrokerService struct {
	mock.Mock
}

func (m *MockBrokerService) broker(args mock.Arguments) (*model.Broker, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Broker), args.Error(1)
}

func (m *MockBrokerService) List(ctx context.Context, f repository.BrokerFilter) ([]model.Broker, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Broker), args.Error(1)
}

func (m *MockBrokerService) Get(ctx context.Context, id int64) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id))
}

func (m *MockBrokerService) Create(ctx context.Context, in model.BrokerInput) (*model.Broker, error) {
	return m.broker(m.Called(ctx, in))
}

func (m *MockBrokerService) Update(ctx context.Context, id int64, in model.BrokerInput) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id, in))
}

func (m *MockBrokerService) ToggleActive(ctx context.Context, id int64) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id))
}

func (m *MockBrokerService) UploadAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string, size int64) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id, r, filename, contentType, size))
}

func (m *MockBrokerService) AvatarURL(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
