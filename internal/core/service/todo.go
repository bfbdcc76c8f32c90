package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"ziluri/internal/core/completion"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/internal/core/schedule"
	tel "ziluri/internal/core/telemetry"
)

// summaryCachePrefix keys the cached calendar summaries; any item write
// drops the whole prefix.
const summaryCachePrefix = "summaries:"

type TodoService struct {
	groups    port.GroupRepository
	items     port.ItemRepository
	users     port.UserService
	resolver  *schedule.Resolver
	dates     *dates.Bucket
	clock     port.Clock
	cache     port.CacheRepository
	telemetry port.Telemetry
}

func NewTodoService(
	groups port.GroupRepository,
	items port.ItemRepository,
	users port.UserService,
	resolver *schedule.Resolver,
	bucket *dates.Bucket,
	clock port.Clock,
	cache port.CacheRepository,
	telemetry port.Telemetry,
) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{
		groups:    groups,
		items:     items,
		users:     users,
		resolver:  resolver,
		dates:     bucket,
		clock:     clock,
		cache:     cache,
		telemetry: telemetry,
	}
}

func (ts *TodoService) ListGroups(ctx context.Context) ([]domain.TodoGroup, error) {
	return ts.groups.List(ctx)
}

// CreateGroup appends the group at the end of the display sequence,
// max(order)+1.
func (ts *TodoService) CreateGroup(ctx context.Context, name string) (domain.TodoGroup, error) {
	maxOrder, err := ts.groups.MaxOrder(ctx)
	if err != nil {
		return domain.TodoGroup{}, err
	}

	now := ts.clock.Now()

	group := domain.TodoGroup{
		Name:      name,
		Order:     maxOrder + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := ts.groups.Create(ctx, group)
	if err != nil {
		slog.Error("Group create failed", "error", err, "name", name)
		return domain.TodoGroup{}, err
	}

	return saved, nil
}

func (ts *TodoService) RenameGroup(ctx context.Context, id int64, name string) (domain.TodoGroup, error) {
	group, err := ts.groups.GetByID(ctx, id)
	if err != nil {
		return domain.TodoGroup{}, err
	}

	group.Name = name
	group.UpdatedAt = ts.clock.Now()

	return ts.groups.Update(ctx, group)
}

// DeleteGroup removes the group; its items go with it through the storage
// cascade.
func (ts *TodoService) DeleteGroup(ctx context.Context, id int64) error {
	if err := ts.groups.Delete(ctx, id); err != nil {
		return err
	}

	ts.invalidateSummaries(ctx)

	return nil
}

func (ts *TodoService) GetItem(ctx context.Context, id int64) (domain.TodoItem, error) {
	return ts.items.GetByID(ctx, id)
}

func (ts *TodoService) ItemsForDate(ctx context.Context, date time.Time) ([]domain.TodoItem, error) {
	return ts.items.ListActiveOn(ctx, ts.dates.DayStart(date))
}

func (ts *TodoService) GroupsWithItemsForDate(ctx context.Context, date time.Time) ([]domain.GroupWithItems, error) {
	groups, err := ts.groups.List(ctx)
	if err != nil {
		return nil, err
	}

	items, err := ts.items.ListActiveOn(ctx, ts.dates.DayStart(date))
	if err != nil {
		return nil, err
	}

	return ts.resolver.GroupsWithItemsForDate(groups, items, date), nil
}

// CreateItem truncates the date to its day, defaults the required count
// to one and appends the item at the end of its group.
func (ts *TodoService) CreateItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	if _, err := ts.groups.GetByID(ctx, item.GroupID); err != nil {
		return domain.TodoItem{}, err
	}

	maxOrder, err := ts.items.MaxOrder(ctx, item.GroupID)
	if err != nil {
		return domain.TodoItem{}, err
	}

	now := ts.clock.Now()

	item.Date = ts.dates.DayStart(item.Date)
	if item.StartDate != nil {
		start := ts.dates.DayStart(*item.StartDate)
		item.StartDate = &start
	}
	if item.EndDate != nil {
		end := ts.dates.DayStart(*item.EndDate)
		item.EndDate = &end
	}
	if item.RequiredCompletions < 1 {
		item.RequiredCompletions = 1
	}
	item.CurrentCompletions = 0
	item.Completed = false
	item.CompletedAt = nil
	item.Order = maxOrder + 1
	item.CreatedAt = now
	item.UpdatedAt = now

	saved, err := ts.items.Create(ctx, item)
	if err != nil {
		slog.Error("Item create failed", "error", err, "group_id", item.GroupID)
		return domain.TodoItem{}, err
	}

	ts.invalidateSummaries(ctx)

	return saved, nil
}

func (ts *TodoService) UpdateItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	current, err := ts.items.GetByID(ctx, item.ID)
	if err != nil {
		return domain.TodoItem{}, err
	}

	current.Content = item.Content
	current.Priority = item.Priority
	current.Date = ts.dates.DayStart(item.Date)
	current.StartDate = item.StartDate
	current.EndDate = item.EndDate
	if item.RequiredCompletions >= 1 {
		current.RequiredCompletions = item.RequiredCompletions
	}
	current.UpdatedAt = ts.clock.Now()

	updated, err := ts.items.Update(ctx, current)
	if err != nil {
		return domain.TodoItem{}, err
	}

	ts.invalidateSummaries(ctx)

	return updated, nil
}

func (ts *TodoService) DeleteItem(ctx context.Context, id int64) error {
	if err := ts.items.Delete(ctx, id); err != nil {
		return err
	}

	ts.invalidateSummaries(ctx)

	return nil
}

// Complete applies one completion transition against the latest persisted
// item state. Experience, streak and the completed total move only when
// the item became done on this very call.
func (ts *TodoService) Complete(ctx context.Context, id int64) (port.CompletionOutcome, error) {
	item, err := ts.items.GetByID(ctx, id)
	if err != nil {
		return port.CompletionOutcome{}, err
	}

	updated, becameDone := completion.Complete(item, ts.clock.Now())

	saved, err := ts.items.Update(ctx, updated)
	if err != nil {
		return port.CompletionOutcome{}, err
	}

	outcome := port.CompletionOutcome{Item: saved, BecameDone: becameDone}

	if becameDone {
		user, leveledUp, err := ts.users.OnItemCompleted(ctx, domain.Priority(saved.Priority))
		if err != nil {
			slog.Error("Progression update failed", "error", err, "item_id", saved.ID)
			return port.CompletionOutcome{}, err
		}

		outcome.LeveledUp = leveledUp
		outcome.User = user

		ts.telemetry.RecordBusinessEvent(ctx, "completed", "todo_item", itemID(saved.ID), user.ID, map[string]interface{}{
			"priority":   saved.PriorityOrFallback(),
			"leveled_up": leveledUp,
			"streak":     user.ContinuousDays,
		})
	}

	ts.invalidateSummaries(ctx)

	return outcome, nil
}

// Uncomplete steps the counter back without touching progression; granted
// experience is deliberately kept.
func (ts *TodoService) Uncomplete(ctx context.Context, id int64) (domain.TodoItem, error) {
	item, err := ts.items.GetByID(ctx, id)
	if err != nil {
		return domain.TodoItem{}, err
	}

	updated := completion.Uncomplete(item, ts.clock.Now())

	saved, err := ts.items.Update(ctx, updated)
	if err != nil {
		return domain.TodoItem{}, err
	}

	ts.invalidateSummaries(ctx)

	return saved, nil
}

func itemID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (ts *TodoService) invalidateSummaries(ctx context.Context) {
	if ts.cache == nil {
		return
	}

	if err := ts.cache.DeleteByPrefix(ctx, summaryCachePrefix); err != nil {
		slog.Warn("Summary cache invalidation failed", "error", err)
	}
}
