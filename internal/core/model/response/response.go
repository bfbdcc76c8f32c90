package response

type GroupResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type TodoResponse struct {
	ID                  int64  `json:"id"`
	GroupID             int64  `json:"group_id"`
	Content             string `json:"content"`
	Completed           bool   `json:"completed"`
	Priority            string `json:"priority"`
	Date                int64  `json:"date"`
	StartDate           *int64 `json:"start_date,omitempty"`
	EndDate             *int64 `json:"end_date,omitempty"`
	MultiDay            bool   `json:"multi_day"`
	RequiredCompletions int    `json:"required_completions"`
	CurrentCompletions  int    `json:"current_completions"`
	Order               int    `json:"order"`
	CompletedAt         *int64 `json:"completed_at,omitempty"`
	CreatedAt           int64  `json:"created_at"`
	UpdatedAt           int64  `json:"updated_at"`
}

type GroupWithTodosResponse struct {
	Group GroupResponse  `json:"group"`
	Todos []TodoResponse `json:"todos"`
}

// CompletionResponse reports a complete/uncomplete transition so the
// client can play its feedback without refetching.
type CompletionResponse struct {
	Todo       TodoResponse `json:"todo"`
	BecameDone bool         `json:"became_done"`
	LeveledUp  bool         `json:"leveled_up"`
	Level      int          `json:"level"`
	Exp        int          `json:"exp"`
	Streak     int          `json:"streak"`
}

type MemoCheckItemResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Checked bool   `json:"checked"`
}

type MemoResponse struct {
	ID         int64                   `json:"id"`
	Title      string                  `json:"title"`
	Content    string                  `json:"content"`
	Color      string                  `json:"color"`
	Pinned     bool                    `json:"pinned"`
	Images     []string                `json:"images"`
	CheckItems []MemoCheckItemResponse `json:"check_items"`
	CreatedAt  int64                   `json:"created_at"`
	UpdatedAt  int64                   `json:"updated_at"`
}

type CalendarDayResponse struct {
	Date               int64 `json:"date"`
	DayOfMonth         int   `json:"day_of_month"`
	IsCurrentMonth     bool  `json:"is_current_month"`
	IsToday            bool  `json:"is_today"`
	IsSelected         bool  `json:"is_selected"`
	IsWeekend          bool  `json:"is_weekend"`
	HasTodos           bool  `json:"has_todos"`
	HasInProgressTodos bool  `json:"has_in_progress_todos"`
	AllCompleted       bool  `json:"all_completed"`
}

type ProfileResponse struct {
	ID             string  `json:"id"`
	Nickname       string  `json:"nickname"`
	Avatar         *string `json:"avatar,omitempty"`
	LoginType      string  `json:"login_type"`
	Level          int     `json:"level"`
	LevelTitle     string  `json:"level_title"`
	LevelProgress  float64 `json:"level_progress"`
	Exp            int     `json:"exp"`
	ExpForLevel    int     `json:"exp_for_level"`
	ExpToNextLevel int     `json:"exp_to_next_level"`
	TotalCompleted int     `json:"total_completed"`
	ContinuousDays int     `json:"continuous_days"`
	CreatedAt      int64   `json:"created_at"`
}

type SessionResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
