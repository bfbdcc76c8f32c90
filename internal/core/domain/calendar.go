package domain

import "time"

// DayTodoSummary aggregates the items of one distinct calendar day. A day
// with no items yields a zero summary, not an absent one, so callers can
// tell "no items" from "no query run" by TotalCount.
type DayTodoSummary struct {
	Date            time.Time
	TotalCount      int
	CompletedCount  int
	InProgressCount int
}

func (s DayTodoSummary) IsAllCompleted() bool {
	return s.TotalCount > 0 && s.CompletedCount == s.TotalCount
}

func (s DayTodoSummary) HasInProgress() bool {
	return s.InProgressCount > 0
}

// CalendarDay is one cell of a rendered month or week grid. Ephemeral,
// rebuilt on every render.
type CalendarDay struct {
	Date               time.Time
	DayOfMonth         int
	IsCurrentMonth     bool
	IsToday            bool
	IsSelected         bool
	IsWeekend          bool
	HasTodos           bool
	HasInProgressTodos bool
	AllCompleted       bool
}
