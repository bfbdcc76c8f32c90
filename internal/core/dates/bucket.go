// Package dates holds the pure date arithmetic behind day bucketing:
// boundaries, same-day checks, calendar-aware offsets. Everything is
// deterministic for a fixed location.
package dates

import (
	"fmt"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

type Bucket struct {
	loc *time.Location
}

func NewBucket(loc *time.Location) *Bucket {
	if loc == nil {
		loc = time.Local
	}
	return &Bucket{loc: loc}
}

func (b *Bucket) Location() *time.Location {
	return b.loc
}

// FromMillis converts an epoch-millisecond timestamp into the bucket's
// location.
func (b *Bucket) FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(b.loc)
}

func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// DayStart truncates to 00:00:00.000 of the local day.
func (b *Bucket) DayStart(t time.Time) time.Time {
	t = t.In(b.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, b.loc)
}

// DayEnd ceils to 23:59:59.999 of the local day.
func (b *Bucket) DayEnd(t time.Time) time.Time {
	t = t.In(b.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999*int(time.Millisecond), b.loc)
}

func (b *Bucket) IsSameDay(a, c time.Time) bool {
	return b.DayStart(a).Equal(b.DayStart(c))
}

// WeekStart returns 00:00 of the Sunday opening the week containing t.
func (b *Bucket) WeekStart(t time.Time) time.Time {
	day := b.DayStart(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekEnd returns 23:59:59.999 of the Saturday closing the week.
func (b *Bucket) WeekEnd(t time.Time) time.Time {
	day := b.DayStart(t)
	return b.DayEnd(day.AddDate(0, 0, int(time.Saturday)-int(day.Weekday())))
}

// MonthStart returns 00:00 of the first day of the month, month 1-based.
func (b *Bucket) MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, b.loc)
}

// MonthEnd returns 23:59:59.999 of the last day of the month.
func (b *Bucket) MonthEnd(year, month int) time.Time {
	return b.DayEnd(b.MonthStart(year, month).AddDate(0, 1, -1))
}

func (b *Bucket) AddDays(t time.Time, days int) time.Time {
	return t.In(b.loc).AddDate(0, 0, days)
}

func (b *Bucket) AddMonths(t time.Time, months int) time.Time {
	return t.In(b.loc).AddDate(0, months, 0)
}

// DaysBetween counts whole calendar days from a to c, signed. Computed on
// day-start millis so DST shifts cannot skew the division.
func (b *Bucket) DaysBetween(a, c time.Time) int {
	start := b.DayStart(a)
	end := b.DayStart(c)
	diff := end.UnixMilli() - start.UnixMilli()

	// Round toward the nearest day; a DST transition leaves the
	// difference one hour off an exact multiple.
	if diff >= 0 {
		return int((diff + dayMillis/2) / dayMillis)
	}
	return -int((-diff + dayMillis/2) / dayMillis)
}

func (b *Bucket) IsConsecutiveDay(a, c time.Time) bool {
	d := b.DaysBetween(a, c)
	return d == 1 || d == -1
}

func (b *Bucket) IsWeekend(t time.Time) bool {
	wd := t.In(b.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (b *Bucket) DayOfWeek(t time.Time) time.Weekday {
	return t.In(b.loc).Weekday()
}

func (b *Bucket) DayOfMonth(t time.Time) int {
	return t.In(b.loc).Day()
}

func (b *Bucket) DaysInMonth(year, month int) int {
	return b.MonthStart(year, month).AddDate(0, 1, -1).Day()
}

// YearMonth returns the calendar year and 1-based month of t.
func (b *Bucket) YearMonth(t time.Time) (int, int) {
	t = t.In(b.loc)
	return t.Year(), int(t.Month())
}

// FirstWeekdayOfMonth returns the weekday of the 1st, 0=Sunday..6=Saturday.
func (b *Bucket) FirstWeekdayOfMonth(year, month int) int {
	return int(b.MonthStart(year, month).Weekday())
}

func (b *Bucket) FormatDate(t time.Time, layout string) string {
	return t.In(b.loc).Format(layout)
}

func (b *Bucket) FormatYearMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (b *Bucket) FormatMonthDay(t time.Time) string {
	return b.FormatDate(t, "01-02")
}

func (b *Bucket) FormatFullDate(t time.Time) string {
	return b.FormatDate(t, "2006-01-02")
}

func WeekdayName(wd time.Weekday) string {
	return [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}[wd]
}
