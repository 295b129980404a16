package service

import (
	"context"

	"conectaleads/internal/cache"
)

const reportCacheKey = "report"

func dashboardCacheKey(period string) string { return "dashboard:" + period }

// invalidateInsights drops cached aggregates after lead writes.
func invalidateInsights(ctx context.Context, c cache.Cache) {
	keys := make([]string, 0, len(Periods)+1)
	for _, p := range Periods {
		keys = append(keys, dashboardCacheKey(p))
	}
	_ = c.Delete(ctx, append(keys, reportCacheKey)...)
}
