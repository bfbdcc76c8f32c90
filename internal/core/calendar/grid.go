// Package calendar renders month and week grids of annotated days from
// per-day summaries. Grids are ephemeral view models, rebuilt per request.
package calendar

import (
	"time"

	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
)

// MonthGridSize is fixed at 6 rows of 7 columns so the layout never
// reflows between months.
const MonthGridSize = 42

const WeekGridSize = 7

type GridBuilder struct {
	dates *dates.Bucket
}

func NewGridBuilder(bucket *dates.Bucket) *GridBuilder {
	return &GridBuilder{dates: bucket}
}

// BuildMonthGrid produces exactly 42 cells for the given anchor month.
// Leading and trailing cells belong to the adjacent months and never carry
// today/selected/indicator flags. Summaries are keyed by day-start millis.
func (g *GridBuilder) BuildMonthGrid(year, month int, selected, today time.Time, summaries map[int64]domain.DayTodoSummary) []domain.CalendarDay {
	days := make([]domain.CalendarDay, 0, MonthGridSize)

	first := g.dates.MonthStart(year, month)
	leading := g.dates.FirstWeekdayOfMonth(year, month)
	inMonth := g.dates.DaysInMonth(year, month)

	for i := leading; i > 0; i-- {
		date := g.dates.AddDays(first, -i)
		days = append(days, domain.CalendarDay{
			Date:       date,
			DayOfMonth: g.dates.DayOfMonth(date),
		})
	}

	for d := 0; d < inMonth; d++ {
		date := g.dates.AddDays(first, d)
		days = append(days, g.currentMonthCell(date, selected, today, summaries))
	}

	for next := 1; len(days) < MonthGridSize; next++ {
		date := g.dates.AddDays(first, inMonth-1+next)
		days = append(days, domain.CalendarDay{
			Date:       date,
			DayOfMonth: g.dates.DayOfMonth(date),
		})
	}

	return days
}

// BuildWeekGrid produces the 7 cells of the Sunday-first week containing
// selected. Week cells always count as current-month.
func (g *GridBuilder) BuildWeekGrid(selected, today time.Time, summaries map[int64]domain.DayTodoSummary) []domain.CalendarDay {
	days := make([]domain.CalendarDay, 0, WeekGridSize)

	start := g.dates.WeekStart(selected)

	for d := 0; d < WeekGridSize; d++ {
		date := g.dates.AddDays(start, d)
		days = append(days, g.currentMonthCell(date, selected, today, summaries))
	}

	return days
}

func (g *GridBuilder) currentMonthCell(date, selected, today time.Time, summaries map[int64]domain.DayTodoSummary) domain.CalendarDay {
	cell := domain.CalendarDay{
		Date:           date,
		DayOfMonth:     g.dates.DayOfMonth(date),
		IsCurrentMonth: true,
		IsToday:        g.dates.IsSameDay(date, today),
		IsSelected:     g.dates.IsSameDay(date, selected),
		IsWeekend:      g.dates.IsWeekend(date),
	}

	if summary, ok := summaries[g.dates.DayStart(date).UnixMilli()]; ok {
		cell.HasTodos = summary.TotalCount > 0
		cell.AllCompleted = summary.IsAllCompleted()
		cell.HasInProgressTodos = summary.HasInProgress()
	}

	return cell
}
