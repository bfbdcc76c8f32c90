package domain

import "time"

// TodoGroup is a named bucket owning an ordered set of items. Deleting a
// group cascades to its items at the storage layer.
type TodoGroup struct {
	ID        int64
	Name      string `validate:"required,min=1,max=100"`
	Order     int    `db:"ord"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupWithItems pairs a group with the subset of its items active on a
// given day. Derived, never persisted.
type GroupWithItems struct {
	Group TodoGroup
	Items []TodoItem
}

func (g *TodoGroup) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":         g.ID,
		"name":       g.Name,
		"ord":        g.Order,
		"created_at": g.CreatedAt.UnixMilli(),
		"updated_at": g.UpdatedAt.UnixMilli(),
	}
}
