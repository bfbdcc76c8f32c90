package domain

import "time"

// Memo is a free-form note, independent of the todo entities. Images and
// check items are ordered and persisted as JSON columns by the storage
// adapter.
type Memo struct {
	ID         int64
	Title      string `validate:"max=200"`
	Content    string
	Color      string `validate:"omitempty,hexcolor"`
	Pinned     bool
	Images     []string
	CheckItems []MemoCheckItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type MemoCheckItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Checked bool   `json:"checked"`
}
