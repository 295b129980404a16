package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

func counts(args mock.Arguments) ([]model.Count, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Count), args.Error(1)
}

func (m *MockReportRepository) CountLeads(ctx context.Context, tr repository.TimeRange) (int, error) {
	args := m.Called(ctx, tr)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) CountByStatus(ctx context.Context, tr repository.TimeRange) ([]model.Count, error) {
	return counts(m.Called(ctx, tr))
}

func (m *MockReportRepository) CountByTemperature(ctx context.Context, tr repository.TimeRange) ([]model.Count, error) {
	return counts(m.Called(ctx, tr))
}

func (m *MockReportRepository) CountBySource(ctx context.Context) ([]model.Count, error) {
	return counts(m.Called(ctx))
}

func (m *MockReportRepository) CountByCity(ctx context.Context) ([]model.Count, error) {
	return counts(m.Called(ctx))
}

func (m *MockReportRepository) CountByPlanType(ctx context.Context) ([]model.Count, error) {
	return counts(m.Called(ctx))
}

func (m *MockReportRepository) TopBrokers(ctx context.Context, tr repository.TimeRange, limit int) ([]model.BrokerPerformance, error) {
	args := m.Called(ctx, tr, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BrokerPerformance), args.Error(1)
}
