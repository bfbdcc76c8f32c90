package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ziluri/internal/core/calendar"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/internal/core/schedule"
)

const summaryCacheTTL = 30 * time.Second

type CalendarService struct {
	items    port.ItemRepository
	resolver *schedule.Resolver
	grid     *calendar.GridBuilder
	dates    *dates.Bucket
	clock    port.Clock
	cache    port.CacheRepository
}

func NewCalendarService(
	items port.ItemRepository,
	resolver *schedule.Resolver,
	grid *calendar.GridBuilder,
	bucket *dates.Bucket,
	clock port.Clock,
	cache port.CacheRepository,
) *CalendarService {
	return &CalendarService{
		items:    items,
		resolver: resolver,
		grid:     grid,
		dates:    bucket,
		clock:    clock,
		cache:    cache,
	}
}

// MonthGrid renders the 42-cell grid of the anchor month. Summaries cover
// the whole visible range, so the leading and trailing cells of adjacent
// months would have data if they ever carried indicators.
func (cs *CalendarService) MonthGrid(ctx context.Context, year, month int, selected time.Time) ([]domain.CalendarDay, error) {
	start := cs.dates.MonthStart(year, month)
	end := cs.dates.MonthEnd(year, month)

	summaries, err := cs.rangeSummaries(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return cs.grid.BuildMonthGrid(year, month, selected, cs.clock.Today(), summaries), nil
}

func (cs *CalendarService) WeekGrid(ctx context.Context, selected time.Time) ([]domain.CalendarDay, error) {
	start := cs.dates.WeekStart(selected)
	end := cs.dates.WeekEnd(selected)

	summaries, err := cs.rangeSummaries(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return cs.grid.BuildWeekGrid(selected, cs.clock.Today(), summaries), nil
}

// DaySummary aggregates the items active on date, multi-day spans
// included, unlike the per-Date buckets of the range summaries.
func (cs *CalendarService) DaySummary(ctx context.Context, date time.Time) (domain.DayTodoSummary, error) {
	day := cs.dates.DayStart(date)

	items, err := cs.items.ListActiveOn(ctx, day)
	if err != nil {
		return domain.DayTodoSummary{}, err
	}

	return cs.resolver.Summarize(items, day), nil
}

func (cs *CalendarService) rangeSummaries(ctx context.Context, start, end time.Time) (map[int64]domain.DayTodoSummary, error) {
	key := fmt.Sprintf("%s%d:%d", summaryCachePrefix, start.UnixMilli(), end.UnixMilli())

	if cached := cs.cachedSummaries(ctx, key); cached != nil {
		return cached, nil
	}

	items, err := cs.items.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summaries := cs.resolver.SummarizeRange(items, start, end)

	byDay := make(map[int64]domain.DayTodoSummary, len(summaries))
	for _, s := range summaries {
		byDay[s.Date.UnixMilli()] = s
	}

	cs.storeSummaries(ctx, key, summaries)

	return byDay, nil
}

func (cs *CalendarService) cachedSummaries(ctx context.Context, key string) map[int64]domain.DayTodoSummary {
	if cs.cache == nil {
		return nil
	}

	raw, err := cs.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil
	}

	var summaries []domain.DayTodoSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		slog.Warn("Summary cache decode failed", "error", err, "key", key)
		return nil
	}

	byDay := make(map[int64]domain.DayTodoSummary, len(summaries))
	for _, s := range summaries {
		byDay[s.Date.UnixMilli()] = s
	}

	return byDay
}

func (cs *CalendarService) storeSummaries(ctx context.Context, key string, summaries []domain.DayTodoSummary) {
	if cs.cache == nil {
		return
	}

	raw, err := json.Marshal(summaries)
	if err != nil {
		return
	}

	if err := cs.cache.Set(ctx, key, raw, summaryCacheTTL); err != nil {
		slog.Warn("Summary cache store failed", "error", err, "key", key)
	}
}
