package port

import (
	"context"
	"time"

	"ziluri/internal/core/domain"
)

type GroupRepository interface {
	List(ctx context.Context) ([]domain.TodoGroup, error)
	GetByID(ctx context.Context, id int64) (domain.TodoGroup, error)
	Create(ctx context.Context, group domain.TodoGroup) (domain.TodoGroup, error)
	Update(ctx context.Context, group domain.TodoGroup) (domain.TodoGroup, error)
	Delete(ctx context.Context, id int64) error
	MaxOrder(ctx context.Context) (int, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (domain.TodoItem, error)
	ListByGroup(ctx context.Context, groupID int64) ([]domain.TodoItem, error)
	// ListActiveOn returns items whose Date equals the day or whose
	// multi-day span contains it, ordered by group then item order.
	ListActiveOn(ctx context.Context, day time.Time) ([]domain.TodoItem, error)
	// ListByDateRange returns items whose Date falls inside [start, end].
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.TodoItem, error)
	Create(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)
	Update(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)
	Delete(ctx context.Context, id int64) error
	MaxOrder(ctx context.Context, groupID int64) (int, error)
	TotalCompletedCount(ctx context.Context) (int, error)
}

// CompletionOutcome carries what a complete call changed, so adapters can
// react (sound, celebration, level-up toast) without re-deriving state.
type CompletionOutcome struct {
	Item       domain.TodoItem
	BecameDone bool
	LeveledUp  bool
	User       domain.User
}

type TodoService interface {
	ListGroups(ctx context.Context) ([]domain.TodoGroup, error)
	CreateGroup(ctx context.Context, name string) (domain.TodoGroup, error)
	RenameGroup(ctx context.Context, id int64, name string) (domain.TodoGroup, error)
	DeleteGroup(ctx context.Context, id int64) error

	GetItem(ctx context.Context, id int64) (domain.TodoItem, error)
	ItemsForDate(ctx context.Context, date time.Time) ([]domain.TodoItem, error)
	GroupsWithItemsForDate(ctx context.Context, date time.Time) ([]domain.GroupWithItems, error)
	CreateItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)
	UpdateItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)
	DeleteItem(ctx context.Context, id int64) error

	Complete(ctx context.Context, id int64) (CompletionOutcome, error)
	Uncomplete(ctx context.Context, id int64) (domain.TodoItem, error)
}
