package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "ziluri/internal/adapter/http/helper"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/port"
	. "ziluri/pkg/tracing"
)

type CalendarHandler struct {
	svc   port.CalendarService
	clock port.Clock
}

func NewCalendarHandler(svc port.CalendarService, clock port.Clock) *CalendarHandler {
	if clock == nil {
		clock = dates.NewSystemClock(dates.NewBucket(time.Local))
	}

	return &CalendarHandler{
		svc:   svc,
		clock: clock,
	}
}

// MonthGrid renders the fixed 42-cell month view around the anchor month.
func (h *CalendarHandler) MonthGrid(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.calendar.MonthGrid", []attribute.KeyValue{
		attribute.String("handler.operation", "MonthGrid"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	now := h.clock.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		SendBadRequestError(c, "year", "Invalid year")
		return
	}

	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		SendBadRequestError(c, "month", "Invalid month, expected 1-12")
		return
	}

	selected, ok := parseDateQuery(c, "selected", h.clock)
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.Int("calendar.year", year),
		attribute.Int("calendar.month", month),
	)

	days, err := h.svc.MonthGrid(ctx, year, month, selected)
	if err != nil {
		AddSpanError(span, err)
		SendInternalError(c, "Error building month grid")
		return
	}

	SendSuccess(c, http.StatusOK, toCalendarDayResponses(days))
}

func (h *CalendarHandler) WeekGrid(c *gin.Context) {
	ctx := c.Request.Context()

	selected, ok := parseDateQuery(c, "selected", h.clock)
	if !ok {
		return
	}

	days, err := h.svc.WeekGrid(ctx, selected)
	if err != nil {
		SendInternalError(c, "Error building week grid")
		return
	}

	SendSuccess(c, http.StatusOK, toCalendarDayResponses(days))
}

func (h *CalendarHandler) DaySummary(c *gin.Context) {
	ctx := c.Request.Context()

	date, ok := parseDateQuery(c, "date", h.clock)
	if !ok {
		return
	}

	summary, err := h.svc.DaySummary(ctx, date)
	if err != nil {
		SendInternalError(c, "Error summarizing day")
		return
	}

	SendSuccess(c, http.StatusOK, gin.H{
		"date":              summary.Date.UnixMilli(),
		"total_count":       summary.TotalCount,
		"completed_count":   summary.CompletedCount,
		"in_progress_count": summary.InProgressCount,
		"all_completed":     summary.IsAllCompleted(),
	})
}
