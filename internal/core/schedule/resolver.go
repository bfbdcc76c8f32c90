// Package schedule decides which items belong to which calendar day and
// aggregates per-day completion summaries. All functions are pure over
// entity snapshots; storage supplies the items, the resolver never queries.
package schedule

import (
	"sort"
	"time"

	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
)

type Resolver struct {
	dates *dates.Bucket
}

func NewResolver(bucket *dates.Bucket) *Resolver {
	return &Resolver{dates: bucket}
}

// ItemsActiveOn returns the items displayed on date: single-day items whose
// Date is that exact day, plus multi-day items whose span contains it.
// Result is ordered by group then item order, stable.
func (r *Resolver) ItemsActiveOn(items []domain.TodoItem, date time.Time) []domain.TodoItem {
	day := r.dates.DayStart(date)

	active := make([]domain.TodoItem, 0)

	for _, item := range items {
		if r.isActiveOn(&item, day) {
			active = append(active, item)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].GroupID != active[j].GroupID {
			return active[i].GroupID < active[j].GroupID
		}
		return active[i].Order < active[j].Order
	})

	return active
}

func (r *Resolver) isActiveOn(item *domain.TodoItem, day time.Time) bool {
	if r.dates.DayStart(item.Date).Equal(day) {
		return true
	}

	if item.StartDate == nil || item.EndDate == nil {
		return false
	}

	start := r.dates.DayStart(*item.StartDate)
	end := r.dates.DayEnd(*item.EndDate)

	return !day.Before(start) && !day.After(end)
}

// Summarize counts the items active on date. Empty input yields a zero
// summary carrying the day, never an absent value.
func (r *Resolver) Summarize(items []domain.TodoItem, date time.Time) domain.DayTodoSummary {
	day := r.dates.DayStart(date)

	summary := domain.DayTodoSummary{Date: day}

	for _, item := range items {
		if !r.isActiveOn(&item, day) {
			continue
		}

		summary.TotalCount++
		if item.Completed {
			summary.CompletedCount++
		}
	}

	summary.InProgressCount = summary.TotalCount - summary.CompletedCount

	return summary
}

// SummarizeRange buckets items by their exact Date field and returns one
// summary per distinct day within [start, end], ascending. Multi-day items
// count only toward their own Date bucket here; they are not expanded over
// the days they span.
func (r *Resolver) SummarizeRange(items []domain.TodoItem, start, end time.Time) []domain.DayTodoSummary {
	from := r.dates.DayStart(start)
	to := r.dates.DayEnd(end)

	buckets := make(map[int64]*domain.DayTodoSummary)

	for _, item := range items {
		day := r.dates.DayStart(item.Date)

		if day.Before(from) || day.After(to) {
			continue
		}

		key := day.UnixMilli()
		summary, ok := buckets[key]
		if !ok {
			summary = &domain.DayTodoSummary{Date: day}
			buckets[key] = summary
		}

		summary.TotalCount++
		if item.Completed {
			summary.CompletedCount++
		} else {
			summary.InProgressCount++
		}
	}

	summaries := make([]domain.DayTodoSummary, 0, len(buckets))
	for _, s := range buckets {
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})

	return summaries
}

// GroupsWithItemsForDate pairs each group having at least one active item
// on date with those items, preserving group order.
func (r *Resolver) GroupsWithItemsForDate(groups []domain.TodoGroup, items []domain.TodoItem, date time.Time) []domain.GroupWithItems {
	active := r.ItemsActiveOn(items, date)

	byGroup := make(map[int64][]domain.TodoItem)
	for _, item := range active {
		byGroup[item.GroupID] = append(byGroup[item.GroupID], item)
	}

	result := make([]domain.GroupWithItems, 0)

	for _, group := range groups {
		groupItems, ok := byGroup[group.ID]
		if !ok {
			continue
		}

		result = append(result, domain.GroupWithItems{
			Group: group,
			Items: groupItems,
		})
	}

	return result
}
