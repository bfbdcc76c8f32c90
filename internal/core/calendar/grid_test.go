package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ziluri/internal/core/calendar"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBuilder() *calendar.GridBuilder {
	return calendar.NewGridBuilder(dates.NewBucket(time.UTC))
}

func TestBuildMonthGrid_AlwaysFortyTwoCells(t *testing.T) {
	g := newBuilder()

	for month := 1; month <= 12; month++ {
		grid := g.BuildMonthGrid(2025, month, day(2025, time.Month(month), 1), day(2025, 1, 1), nil)
		assert.Len(t, grid, calendar.MonthGridSize, "month %d", month)
	}
}

func TestBuildMonthGrid_LeadingCellsBelongToPreviousMonth(t *testing.T) {
	g := newBuilder()

	// July 2025 starts on a Tuesday, so two leading June cells.
	grid := g.BuildMonthGrid(2025, 7, day(2025, 7, 1), day(2025, 7, 1), nil)

	assert.Equal(t, 29, grid[0].DayOfMonth)
	assert.False(t, grid[0].IsCurrentMonth)
	assert.Equal(t, 30, grid[1].DayOfMonth)
	assert.False(t, grid[1].IsCurrentMonth)
	assert.Equal(t, 1, grid[2].DayOfMonth)
	assert.True(t, grid[2].IsCurrentMonth)
}

func TestBuildMonthGrid_TrailingCellsBelongToNextMonth(t *testing.T) {
	g := newBuilder()

	grid := g.BuildMonthGrid(2025, 7, day(2025, 7, 1), day(2025, 7, 1), nil)

	last := grid[len(grid)-1]
	assert.False(t, last.IsCurrentMonth)
	assert.Equal(t, time.August, last.Date.Month())
}

func TestBuildMonthGrid_OutOfMonthCellsCarryNoFlags(t *testing.T) {
	g := newBuilder()

	today := day(2025, 6, 30)
	summaries := map[int64]domain.DayTodoSummary{
		day(2025, 6, 30).UnixMilli(): {Date: day(2025, 6, 30), TotalCount: 2},
	}

	// June 30 lands in the leading cells of the July grid.
	grid := g.BuildMonthGrid(2025, 7, today, today, summaries)

	assert.Equal(t, 30, grid[1].DayOfMonth)
	assert.False(t, grid[1].IsToday)
	assert.False(t, grid[1].IsSelected)
	assert.False(t, grid[1].HasTodos)
}

func TestBuildMonthGrid_TodaySelectedAndIndicators(t *testing.T) {
	g := newBuilder()

	today := day(2025, 6, 10)
	selected := day(2025, 6, 15)

	summaries := map[int64]domain.DayTodoSummary{
		day(2025, 6, 15).UnixMilli(): {Date: day(2025, 6, 15), TotalCount: 2, CompletedCount: 2},
		day(2025, 6, 16).UnixMilli(): {Date: day(2025, 6, 16), TotalCount: 3, CompletedCount: 1, InProgressCount: 2},
	}

	grid := g.BuildMonthGrid(2025, 6, selected, today, summaries)

	// June 2025 starts on a Sunday, no leading cells.
	assert.True(t, grid[9].IsToday)
	assert.False(t, grid[9].IsSelected)

	cell15 := grid[14]
	assert.True(t, cell15.IsSelected)
	assert.True(t, cell15.HasTodos)
	assert.True(t, cell15.AllCompleted)
	assert.False(t, cell15.HasInProgressTodos)

	cell16 := grid[15]
	assert.True(t, cell16.HasTodos)
	assert.False(t, cell16.AllCompleted)
	assert.True(t, cell16.HasInProgressTodos)
}

func TestBuildMonthGrid_SelectionOnlyMovesIsSelected(t *testing.T) {
	g := newBuilder()

	today := day(2025, 6, 10)
	summaries := map[int64]domain.DayTodoSummary{
		day(2025, 6, 5).UnixMilli():  {Date: day(2025, 6, 5), TotalCount: 2, CompletedCount: 2},
		day(2025, 6, 15).UnixMilli(): {Date: day(2025, 6, 15), TotalCount: 3, CompletedCount: 1, InProgressCount: 2},
	}

	first := g.BuildMonthGrid(2025, 6, day(2025, 6, 5), today, summaries)
	second := g.BuildMonthGrid(2025, 6, day(2025, 6, 22), today, summaries)

	for i := range first {
		a := first[i]
		b := second[i]
		a.IsSelected = false
		b.IsSelected = false
		assert.Equal(t, a, b, "cell %d", i)
	}
}

func TestBuildWeekGrid_SevenCellsSundayFirst(t *testing.T) {
	g := newBuilder()

	// 2025-06-10 is a Tuesday; its week opens on Sunday the 8th.
	grid := g.BuildWeekGrid(day(2025, 6, 10), day(2025, 6, 10), nil)

	assert.Len(t, grid, calendar.WeekGridSize)
	assert.Equal(t, time.Sunday, grid[0].Date.Weekday())
	assert.Equal(t, 8, grid[0].DayOfMonth)
	assert.Equal(t, time.Saturday, grid[6].Date.Weekday())

	for _, cell := range grid {
		assert.True(t, cell.IsCurrentMonth)
	}
}

func TestBuildWeekGrid_WeekendFlags(t *testing.T) {
	g := newBuilder()

	grid := g.BuildWeekGrid(day(2025, 6, 10), day(2025, 6, 10), nil)

	assert.True(t, grid[0].IsWeekend)
	assert.True(t, grid[6].IsWeekend)
	for _, cell := range grid[1:6] {
		assert.False(t, cell.IsWeekend)
	}
}
