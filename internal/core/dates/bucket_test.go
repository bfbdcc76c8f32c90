package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ziluri/internal/core/dates"
)

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayStartAndEnd(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	at := time.Date(2025, 6, 10, 15, 42, 7, 123, time.UTC)

	assert.Equal(t, utcDay(2025, 6, 10), b.DayStart(at))
	assert.Equal(t, time.Date(2025, 6, 10, 23, 59, 59, 999*int(time.Millisecond), time.UTC), b.DayEnd(at))
}

func TestIsSameDay(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	morning := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, b.IsSameDay(morning, evening))
	assert.False(t, b.IsSameDay(evening, nextDay))
}

func TestWeekBoundaries_SundayFirst(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	// 2025-06-10 is a Tuesday.
	tuesday := utcDay(2025, 6, 10)

	assert.Equal(t, utcDay(2025, 6, 8), b.WeekStart(tuesday))
	assert.Equal(t, time.Saturday, b.WeekEnd(tuesday).Weekday())
	assert.Equal(t, 14, b.WeekEnd(tuesday).Day())

	// A Sunday opens its own week.
	sunday := utcDay(2025, 6, 8)
	assert.Equal(t, sunday, b.WeekStart(sunday))
}

func TestMonthBoundaries(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	assert.Equal(t, utcDay(2025, 2, 1), b.MonthStart(2025, 2))
	assert.Equal(t, 28, b.MonthEnd(2025, 2).Day())
	assert.Equal(t, 29, b.MonthEnd(2024, 2).Day())
	assert.Equal(t, 31, b.MonthEnd(2025, 12).Day())
}

func TestDaysBetween(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	tests := []struct {
		a, c time.Time
		want int
	}{
		{utcDay(2025, 6, 10), utcDay(2025, 6, 10), 0},
		{utcDay(2025, 6, 10), utcDay(2025, 6, 11), 1},
		{utcDay(2025, 6, 11), utcDay(2025, 6, 10), -1},
		{utcDay(2025, 6, 10), utcDay(2025, 7, 10), 30},
		{utcDay(2024, 12, 31), utcDay(2025, 1, 1), 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.DaysBetween(tt.a, tt.c))
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	late := time.Date(2025, 6, 10, 23, 50, 0, 0, time.UTC)
	early := time.Date(2025, 6, 11, 0, 10, 0, 0, time.UTC)

	assert.Equal(t, 1, b.DaysBetween(late, early))
}

func TestIsConsecutiveDay(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	assert.True(t, b.IsConsecutiveDay(utcDay(2025, 6, 10), utcDay(2025, 6, 11)))
	assert.True(t, b.IsConsecutiveDay(utcDay(2025, 6, 11), utcDay(2025, 6, 10)))
	assert.False(t, b.IsConsecutiveDay(utcDay(2025, 6, 10), utcDay(2025, 6, 10)))
	assert.False(t, b.IsConsecutiveDay(utcDay(2025, 6, 10), utcDay(2025, 6, 12)))
}

func TestDaysInMonth(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	assert.Equal(t, 31, b.DaysInMonth(2025, 1))
	assert.Equal(t, 28, b.DaysInMonth(2025, 2))
	assert.Equal(t, 29, b.DaysInMonth(2024, 2))
	assert.Equal(t, 30, b.DaysInMonth(2025, 4))
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	// June 2025 starts on a Sunday, July on a Tuesday.
	assert.Equal(t, 0, b.FirstWeekdayOfMonth(2025, 6))
	assert.Equal(t, 2, b.FirstWeekdayOfMonth(2025, 7))
}

func TestIsWeekend(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	assert.True(t, b.IsWeekend(utcDay(2025, 6, 7)))
	assert.True(t, b.IsWeekend(utcDay(2025, 6, 8)))
	assert.False(t, b.IsWeekend(utcDay(2025, 6, 9)))
}

func TestFromMillisRoundTrip(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	at := utcDay(2025, 6, 10)

	assert.Equal(t, at, b.FromMillis(dates.ToMillis(at)))
}

func TestFormatting(t *testing.T) {
	b := dates.NewBucket(time.UTC)

	at := utcDay(2025, 6, 5)

	assert.Equal(t, "2025-06", b.FormatYearMonth(2025, 6))
	assert.Equal(t, "06-05", b.FormatMonthDay(at))
	assert.Equal(t, "2025-06-05", b.FormatFullDate(at))
}

func TestNewBucket_NilLocationFallsBackToLocal(t *testing.T) {
	b := dates.NewBucket(nil)

	assert.Equal(t, time.Local, b.Location())
}
