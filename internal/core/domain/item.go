package domain

import (
	"fmt"
	"time"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p Priority) String() string {
	return []string{"low", "medium", "high", "urgent"}[p]
}

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "medium", "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "urgent":
		return PriorityUrgent, nil
	default:
		return -1, fmt.Errorf("invalid priority: %s", s)
	}
}

// TodoItem is a single task. Date is always truncated to the local day
// boundary. StartDate/EndDate are set only for multi-day tasks, and
// RequiredCompletions > 1 turns the item into a "repeat N times" task.
type TodoItem struct {
	ID                  int64
	GroupID             int64  `validate:"required"`
	Content             string `validate:"required,max=500"`
	Completed           bool
	Priority            int `validate:"oneof=0 1 2 3"`
	Date                time.Time
	StartDate           *time.Time
	EndDate             *time.Time
	RequiredCompletions int `validate:"min=1"`
	CurrentCompletions  int `validate:"min=0"`
	Order               int `db:"ord"`
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsMultiDay reports whether the item spans more than one calendar day.
func (i *TodoItem) IsMultiDay() bool {
	return i.StartDate != nil && i.EndDate != nil && !i.StartDate.Equal(*i.EndDate)
}

// IsFullyCompleted holds once the progress counter reaches the required
// count. The counter may exceed the requirement; the flag stays true.
func (i *TodoItem) IsFullyCompleted() bool {
	return i.CurrentCompletions >= i.RequiredCompletions
}

func (i *TodoItem) PriorityOrFallback(fallback ...string) string {
	if i.Priority >= int(PriorityLow) && i.Priority <= int(PriorityUrgent) {
		return Priority(i.Priority).String()
	}

	if len(fallback) > 0 && fallback[0] != "" {
		return fallback[0]
	}

	return "unknown"
}

func (i *TodoItem) ToMap() map[string]interface{} {
	var startDate, endDate, completedAt interface{}

	if i.StartDate != nil {
		startDate = i.StartDate.UnixMilli()
	}
	if i.EndDate != nil {
		endDate = i.EndDate.UnixMilli()
	}
	if i.CompletedAt != nil {
		completedAt = i.CompletedAt.UnixMilli()
	}

	return map[string]interface{}{
		"id":                   i.ID,
		"group_id":             i.GroupID,
		"content":              i.Content,
		"completed":            i.Completed,
		"priority":             i.Priority,
		"date":                 i.Date.UnixMilli(),
		"start_date":           startDate,
		"end_date":             endDate,
		"required_completions": i.RequiredCompletions,
		"current_completions":  i.CurrentCompletions,
		"ord":                  i.Order,
		"completed_at":         completedAt,
		"created_at":           i.CreatedAt.UnixMilli(),
		"updated_at":           i.UpdatedAt.UnixMilli(),
	}
}
