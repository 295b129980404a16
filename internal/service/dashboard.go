package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"conectaleads/internal/cache"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// Dashboard periods.
const (
	PeriodThisMonth   = "este-mes"
	PeriodLastMonth   = "mes-passado"
	PeriodLast3Months = "ultimos-3-meses"
)

// Periods lists the accepted dashboard periods; the first one is the default.
var Periods = []string{PeriodThisMonth, PeriodLastMonth, PeriodLast3Months}

const (
	topBrokersLimit  = 5
	recentLeadsLimit = 5
)

// DashboardService computes the dashboard for a period.
type DashboardService interface {
	// Metrics returns the dashboard for period. An empty period means este-mes.
	Metrics(ctx context.Context, period string) (*model.DashboardMetrics, error)
}

type dashboardService struct {
	reports repository.ReportRepository
	leads   repository.LeadRepository
	cache   cache.Cache
	ttl     time.Duration
	loc     *time.Location
	now     func() time.Time
}

func NewDashboardService(reports repository.ReportRepository, leads repository.LeadRepository, c cache.Cache, ttl time.Duration, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{reports: reports, leads: leads, cache: c, ttl: ttl, loc: loc, now: time.Now}
}

// periodRange returns the month-aligned window for period and the window of
// equal length right before it.
func periodRange(period string, now time.Time) (cur, prev repository.TimeRange, err error) {
	var offset, span int
	switch period {
	case PeriodThisMonth:
		offset, span = 0, 1
	case PeriodLastMonth:
		offset, span = -1, 1
	case PeriodLast3Months:
		offset, span = -2, 3
	default:
		return cur, prev, ErrInvalidPeriod
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := monthStart.AddDate(0, offset, 0)
	cur = repository.TimeRange{From: from, To: from.AddDate(0, span, 0)}
	prev = repository.TimeRange{From: from.AddDate(0, -span, 0), To: from}
	return cur, prev, nil
}

func (s *dashboardService) Metrics(ctx context.Context, period string) (*model.DashboardMetrics, error) {
	if period == "" {
		period = PeriodThisMonth
	}
	cur, prev, err := periodRange(period, s.now().In(s.loc))
	if err != nil {
		return nil, err
	}

	return cache.Remember(ctx, s.cache, dashboardCacheKey(period), s.ttl, func(ctx context.Context) (*model.DashboardMetrics, error) {
		return s.compute(ctx, period, cur, prev)
	})
}

func (s *dashboardService) compute(ctx context.Context, period string, cur, prev repository.TimeRange) (*model.DashboardMetrics, error) {
	var (
		newLeads, prevLeads int
		byStatus, byTemp    []model.Count
		top                 []model.BrokerPerformance
		recent              *repository.PageResult[model.Lead]
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		newLeads, err = s.reports.CountLeads(ctx, cur)
		return err
	})
	g.Go(func() (err error) {
		prevLeads, err = s.reports.CountLeads(ctx, prev)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.reports.CountByStatus(ctx, cur)
		return err
	})
	g.Go(func() (err error) {
		byTemp, err = s.reports.CountByTemperature(ctx, cur)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.reports.TopBrokers(ctx, cur, topBrokersLimit)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.leads.List(ctx, repository.LeadFilter{}, repository.PageQuery{Limit: recentLeadsLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pipeline := ordered(model.PipelineStatuses, byStatus)
	conversions := lookup(byStatus, model.StatusClosed)

	if top == nil {
		top = []model.BrokerPerformance{}
	}
	return &model.DashboardMetrics{
		Period:         period,
		From:           cur.From,
		To:             cur.To,
		NewLeads:       newLeads,
		PreviousLeads:  prevLeads,
		ChangePercent:  changePercent(newLeads, prevLeads),
		Conversions:    conversions,
		ConversionRate: percent(conversions, newLeads),
		Pipeline:       pipeline,
		ByTemperature:  ordered(model.Temperatures, byTemp),
		TopBrokers:     top,
		RecentLeads:    recent.Items,
	}, nil
}

// ordered returns one entry per label in labels order, zero-filled.
// Counts whose label is not listed are appended after them.
func ordered(labels []string, counts []model.Count) []model.Count {
	known := make(map[string]bool, len(labels))
	out := make([]model.Count, 0, len(labels))
	for _, l := range labels {
		known[l] = true
		out = append(out, model.Count{Label: l, Total: lookup(counts, l)})
	}
	for _, c := range counts {
		if !known[c.Label] {
			out = append(out, c)
		}
	}
	return out
}

func lookup(counts []model.Count, label string) int {
	for _, c := range counts {
		if c.Label == label {
			return c.Total
		}
	}
	return 0
}

// changePercent is the growth from prev to cur, rounded to one decimal.
// Growth from zero counts as 100%.
func changePercent(cur, prev int) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return round1(float64(cur-prev) / float64(prev) * 100)
}

// percent is part/total as a percentage rounded to one decimal; 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
