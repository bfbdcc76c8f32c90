package request

// Date fields travel as epoch milliseconds, matching the persisted
// day-truncated timestamps.

type GroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type TodoRequest struct {
	GroupID             int64  `json:"group_id" validate:"required"`
	Content             string `json:"content" validate:"required,max=500"`
	Priority            string `json:"priority,omitempty"`
	Date                int64  `json:"date" validate:"required"`
	StartDate           *int64 `json:"start_date,omitempty"`
	EndDate             *int64 `json:"end_date,omitempty"`
	RequiredCompletions int    `json:"required_completions,omitempty" validate:"omitempty,min=1"`
}

type MemoCheckItemRequest struct {
	ID      string `json:"id"`
	Content string `json:"content" validate:"required"`
	Checked bool   `json:"checked"`
}

type MemoRequest struct {
	Title      string                 `json:"title,omitempty" validate:"max=200"`
	Content    string                 `json:"content,omitempty"`
	Color      string                 `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Pinned     bool                   `json:"pinned,omitempty"`
	Images     []string               `json:"images,omitempty"`
	CheckItems []MemoCheckItemRequest `json:"check_items,omitempty"`
}
