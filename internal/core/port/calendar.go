package port

import (
	"context"
	"time"

	"ziluri/internal/core/domain"
)

type CalendarService interface {
	// MonthGrid renders the 42-cell grid for the anchor month, month
	// 1-based.
	MonthGrid(ctx context.Context, year, month int, selected time.Time) ([]domain.CalendarDay, error)
	WeekGrid(ctx context.Context, selected time.Time) ([]domain.CalendarDay, error)
	DaySummary(ctx context.Context, date time.Time) (domain.DayTodoSummary, error)
}
