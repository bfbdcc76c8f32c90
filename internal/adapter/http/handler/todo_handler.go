package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "ziluri/internal/adapter/http/helper"
	. "ziluri/internal/adapter/http/validation"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/model/request"
	"ziluri/internal/core/model/response"
	"ziluri/internal/core/port"
	"ziluri/internal/core/util"
	"ziluri/pkg/config"
	. "ziluri/pkg/tracing"
)

type TodoHandler struct {
	svc    port.TodoService
	clock  port.Clock
	Logger *config.LokiLogger
}

func NewTodoHandler(svc port.TodoService, clock port.Clock, logger *config.LokiLogger) *TodoHandler {
	if clock == nil {
		clock = dates.NewSystemClock(dates.NewBucket(time.Local))
	}

	return &TodoHandler{
		svc:    svc,
		clock:  clock,
		Logger: logger,
	}
}

func (h *TodoHandler) logError(ctx context.Context, msg string, fields ...zap.Field) {
	if h.Logger == nil {
		return
	}

	h.Logger.Logger.Ctx(ctx).Error(msg, fields...)
}

// GetTodosForDate returns the items active on the requested day, flat or
// grouped by their group.
func (h *TodoHandler) GetTodosForDate(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetTodosForDate", []attribute.KeyValue{
		attribute.String("handler.operation", "GetTodosForDate"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	date, ok := parseDateQuery(c, "date", h.clock)
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.Int64("todo.date", date.UnixMilli()),
		attribute.Bool("todo.grouped", c.Query("grouped") == "true"),
	)

	if c.Query("grouped") == "true" {
		grouped, err := h.svc.GroupsWithItemsForDate(ctx, date)
		if err != nil {
			AddSpanError(span, err)
			h.logError(ctx, "Failed to get grouped todos", zap.Error(err))
			SendInternalError(c, "Error getting todos")
			return
		}

		responses := make([]response.GroupWithTodosResponse, 0, len(grouped))
		for _, entry := range grouped {
			responses = append(responses, response.GroupWithTodosResponse{
				Group: toGroupResponse(entry.Group),
				Todos: toTodoResponses(entry.Items),
			})
		}

		SendSuccess(c, http.StatusOK, responses)
		return
	}

	items, err := h.svc.ItemsForDate(ctx, date)
	if err != nil {
		AddSpanError(span, err)
		h.logError(ctx, "Failed to get todos", zap.Error(err))
		SendInternalError(c, "Error getting todos")
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponses(items))
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	item, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Todo not found")
			return
		}
		SendInternalError(c, "Error getting todo")
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponse(item))
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.TodoRequest](c)
	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	item, ok := todoFromRequest(c, params)
	if !ok {
		return
	}

	item, err = h.svc.CreateItem(ctx, item)
	if err != nil {
		h.logError(ctx, "Failed to create todo", zap.Error(err))

		if validationErrors := FormatValidationErrors(err); len(validationErrors) > 0 {
			SendValidationError(c, err)
			return
		}

		SendBadRequestError(c, "creation", err.Error())
		return
	}

	SendSuccess(c, http.StatusCreated, toTodoResponse(item))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	params, err := util.ParamsToMap[request.TodoRequest](c)
	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	item, ok := todoFromRequest(c, params)
	if !ok {
		return
	}
	item.ID = id

	item, err = h.svc.UpdateItem(ctx, item)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Todo not found")
			return
		}

		SendBadRequestError(c, "update", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTodoResponse(item)})
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Todo not found")
			return
		}
		SendInternalError(c, "Error deleting todo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// CompleteTodo advances the completion counter and reports the progression
// side effects of the transition.
func (h *TodoHandler) CompleteTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.CompleteTodo", []attribute.KeyValue{
		attribute.String("handler.operation", "CompleteTodo"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	outcome, err := h.svc.Complete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Todo not found")
			return
		}

		AddSpanError(span, err)
		h.logError(ctx, "Failed to complete todo",
			zap.Error(err),
			zap.Int64("todo_id", id),
		)
		SendInternalError(c, "Error completing todo")
		return
	}

	span.SetAttributes(
		attribute.Bool("todo.became_done", outcome.BecameDone),
		attribute.Bool("user.leveled_up", outcome.LeveledUp),
	)

	SendSuccess(c, http.StatusOK, response.CompletionResponse{
		Todo:       toTodoResponse(outcome.Item),
		BecameDone: outcome.BecameDone,
		LeveledUp:  outcome.LeveledUp,
		Level:      outcome.User.Level,
		Exp:        outcome.User.Exp,
		Streak:     outcome.User.ContinuousDays,
	})
}

func (h *TodoHandler) UncompleteTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	item, err := h.svc.Uncomplete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "Todo not found")
			return
		}
		SendInternalError(c, "Error uncompleting todo")
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponse(item))
}

func todoFromRequest(c *gin.Context, params request.TodoRequest) (domain.TodoItem, bool) {
	priority, err := domain.ParsePriority(params.Priority)
	if err != nil {
		SendBadRequestError(c, "priority", err.Error())
		return domain.TodoItem{}, false
	}

	item := domain.TodoItem{
		GroupID:             params.GroupID,
		Content:             params.Content,
		Priority:            int(priority),
		Date:                time.UnixMilli(params.Date),
		RequiredCompletions: params.RequiredCompletions,
	}

	if params.StartDate != nil {
		start := time.UnixMilli(*params.StartDate)
		item.StartDate = &start
	}
	if params.EndDate != nil {
		end := time.UnixMilli(*params.EndDate)
		item.EndDate = &end
	}

	if (item.StartDate == nil) != (item.EndDate == nil) {
		SendBadRequestError(c, "dates", "start_date and end_date must be set together")
		return domain.TodoItem{}, false
	}

	if item.StartDate != nil && item.EndDate.Before(*item.StartDate) {
		SendBadRequestError(c, "dates", "end_date must not precede start_date")
		return domain.TodoItem{}, false
	}

	return item, true
}

func parseDateQuery(c *gin.Context, name string, clock port.Clock) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return clock.Now(), true
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		SendBadRequestError(c, name, "Invalid date, expected epoch milliseconds")
		return time.Time{}, false
	}

	return time.UnixMilli(millis), true
}
