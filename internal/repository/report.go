package repository

import (
	"context"
	"time"

	"conectaleads/internal/model"
)

// TimeRange is a half-open [From, To) interval. A zero bound is unbounded.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// ReportRepository runs the aggregate queries behind the dashboard and reports.
type ReportRepository interface {
	CountLeads(ctx context.Context, tr TimeRange) (int, error)
	CountByStatus(ctx context.Context, tr TimeRange) ([]model.Count, error)
	CountByTemperature(ctx context.Context, tr TimeRange) ([]model.Count, error)
	CountBySource(ctx context.Context) ([]model.Count, error)
	CountByCity(ctx context.Context) ([]model.Count, error)
	CountByPlanType(ctx context.Context) ([]model.Count, error)
	TopBrokers(ctx context.Context, tr TimeRange, limit int) ([]model.BrokerPerformance, error)
}
