package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"conectaleads/internal/cache"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// ReportService builds the all-time reports page.
type ReportService interface {
	Report(ctx context.Context) (*model.Report, error)
}

type reportService struct {
	reports repository.ReportRepository
	cache   cache.Cache
	ttl     time.Duration
}

func NewReportService(reports repository.ReportRepository, c cache.Cache, ttl time.Duration) ReportService {
	return &reportService{reports: reports, cache: c, ttl: ttl}
}

func (s *reportService) Report(ctx context.Context) (*model.Report, error) {
	return cache.Remember(ctx, s.cache, reportCacheKey, s.ttl, s.build)
}

func (s *reportService) build(ctx context.Context) (*model.Report, error) {
	var (
		all                                repository.TimeRange
		total                              int
		byStatus, bySource, byCity, byPlan []model.Count
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.reports.CountLeads(ctx, all)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.reports.CountByStatus(ctx, all)
		return err
	})
	g.Go(func() (err error) {
		bySource, err = s.reports.CountBySource(ctx)
		return err
	})
	g.Go(func() (err error) {
		byCity, err = s.reports.CountByCity(ctx)
		return err
	})
	g.Go(func() (err error) {
		byPlan, err = s.reports.CountByPlanType(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	conversions := lookup(byStatus, model.StatusClosed)
	return &model.Report{
		TotalLeads:     total,
		Conversions:    conversions,
		ConversionRate: percent(conversions, total),
		ByStatus:       ordered(model.PipelineStatuses, byStatus),
		BySource:       nonNil(bySource),
		ByCity:         nonNil(byCity),
		ByPlanType:     nonNil(byPlan),
	}, nil
}

func nonNil(c []model.Count) []model.Count {
	if c == nil {
		return []model.Count{}
	}
	return c
}
