package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

type MockBrokerRepository struct {
	mock.Mock
}

func (m *MockBrokerRepository) broker(args mock.Arguments) (*model.Broker, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Broker), args.Error(1)
}

func (m *MockBrokerRepository) Create(ctx context.Context, in model.BrokerInput) (*model.Broker, error) {
	return m.broker(m.Called(ctx, in))
}

func (m *MockBrokerRepository) FindByID(ctx context.Context, id int64) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id))
}

func (m *MockBrokerRepository) List(ctx context.Context, f repository.BrokerFilter) ([]model.Broker, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Broker), args.Error(1)
}

func (m *MockBrokerRepository) Update(ctx context.Context, id int64, in model.BrokerInput) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id, in))
}

func (m *MockBrokerRepository) SetActive(ctx context.Context, id int64, active bool) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id, active))
}

func (m *MockBrokerRepository) SetAvatar(ctx context.Context, id int64, avatarRef string) (*model.Broker, error) {
	return m.broker(m.Called(ctx, id, avatarRef))
}
