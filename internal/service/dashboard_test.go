package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	repoMocks "conectaleads/internal/repository/mocks"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 1, 18, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		period   string
		wantCur  repository.TimeRange
		wantPrev repository.TimeRange
		wantErr  error
	}{
		{
			period:   PeriodThisMonth,
			wantCur:  repository.TimeRange{From: month(2026, 1), To: month(2026, 2)},
			wantPrev: repository.TimeRange{From: month(2025, 12), To: month(2026, 1)},
		},
		{
			period:   PeriodLastMonth,
			wantCur:  repository.TimeRange{From: month(2025, 12), To: month(2026, 1)},
			wantPrev: repository.TimeRange{From: month(2025, 11), To: month(2025, 12)},
		},
		{
			period:   PeriodLast3Months,
			wantCur:  repository.TimeRange{From: month(2025, 11), To: month(2026, 2)},
			wantPrev: repository.TimeRange{From: month(2025, 8), To: month(2025, 11)},
		},
		{
			period:  "semana",
			wantErr: ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			cur, prev, err := periodRange(tt.period, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCur, cur)
			assert.Equal(t, tt.wantPrev, prev)
		})
	}
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, 0.0, changePercent(0, 0))
	assert.Equal(t, 100.0, changePercent(7, 0))
	assert.Equal(t, 50.0, changePercent(15, 10))
	assert.Equal(t, -33.3, changePercent(2, 3))
	assert.Equal(t, 33.3, percent(1, 3))
	assert.Equal(t, 0.0, percent(4, 0))
}

func TestOrdered(t *testing.T) {
	got := ordered([]string{"frio", "morno", "quente"}, []model.Count{
		{Label: "quente", Total: 2},
		{Label: "gelado", Total: 1},
	})
	want := []model.Count{
		{Label: "frio", Total: 0},
		{Label: "morno", Total: 0},
		{Label: "quente", Total: 2},
		{Label: "gelado", Total: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ordered() mismatch (-want +got):\n%s", diff)
	}
}

func newDashboardFixture(now time.Time) (*dashboardService, *repoMocks.MockReportRepository, *repoMocks.MockLeadRepository, *memCache) {
	reports := new(repoMocks.MockReportRepository)
	leads := new(repoMocks.MockLeadRepository)
	c := newMemCache()
	svc := NewDashboardService(reports, leads, c, time.Minute, time.UTC).(*dashboardService)
	svc.now = func() time.Time { return now }
	return svc, reports, leads, c
}

func TestDashboardService_Metrics(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	cur := repository.TimeRange{From: month(2026, 10), To: month(2026, 11)}
	prev := repository.TimeRange{From: month(2026, 9), To: month(2026, 10)}

	svc, reports, leads, c := newDashboardFixture(now)
	reports.On("CountLeads", mock.Anything, cur).Return(12, nil).Once()
	reports.On("CountLeads", mock.Anything, prev).Return(8, nil).Once()
	reports.On("CountByStatus", mock.Anything, cur).
		Return([]model.Count{{Label: "novo", Total: 9}, {Label: "fechado", Total: 3}}, nil).Once()
	reports.On("CountByTemperature", mock.Anything, cur).
		Return([]model.Count{{Label: "quente", Total: 4}}, nil).Once()
	reports.On("TopBrokers", mock.Anything, cur, 5).Return(nil, nil).Once()
	leads.On("List", mock.Anything, repository.LeadFilter{}, repository.PageQuery{Limit: 5}).
		Return(&repository.PageResult[model.Lead]{Items: []model.Lead{{ID: 30}}, Total: 12}, nil).Once()

	got, err := svc.Metrics(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, PeriodThisMonth, got.Period)
	assert.Equal(t, 12, got.NewLeads)
	assert.Equal(t, 8, got.PreviousLeads)
	assert.Equal(t, 50.0, got.ChangePercent)
	assert.Equal(t, 3, got.Conversions)
	assert.Equal(t, 25.0, got.ConversionRate)
	assert.Len(t, got.Pipeline, len(model.PipelineStatuses))
	assert.Equal(t, model.Count{Label: "novo", Total: 9}, got.Pipeline[0])
	assert.Equal(t, model.Count{Label: "quente", Total: 4}, got.ByTemperature[2])
	assert.NotNil(t, got.TopBrokers)
	assert.Len(t, got.RecentLeads, 1)
	assert.True(t, c.has(dashboardCacheKey(PeriodThisMonth)))

	// Second call is served from the cache; Once() would fail otherwise.
	again, err := svc.Metrics(ctx, PeriodThisMonth)
	require.NoError(t, err)
	assert.Equal(t, got.NewLeads, again.NewLeads)
	reports.AssertExpectations(t)
	leads.AssertExpectations(t)
}

func TestDashboardService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid period", func(t *testing.T) {
		svc, reports, _, _ := newDashboardFixture(time.Now())
		_, err := svc.Metrics(ctx, "ano-passado")
		assert.ErrorIs(t, err, ErrInvalidPeriod)
		reports.AssertNotCalled(t, "CountLeads", mock.Anything, mock.Anything)
	})

	t.Run("query failure is not cached", func(t *testing.T) {
		svc, reports, leads, c := newDashboardFixture(time.Now())
		reports.On("CountLeads", mock.Anything, mock.Anything).Return(0, errors.New("db down"))
		reports.On("CountByStatus", mock.Anything, mock.Anything).Return(nil, nil)
		reports.On("CountByTemperature", mock.Anything, mock.Anything).Return(nil, nil)
		reports.On("TopBrokers", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
		leads.On("List", mock.Anything, mock.Anything, mock.Anything).
			Return(&repository.PageResult[model.Lead]{}, nil)

		_, err := svc.Metrics(ctx, PeriodLastMonth)
		assert.EqualError(t, err, "db down")
		assert.False(t, c.has(dashboardCacheKey(PeriodLastMonth)))
	})
}
