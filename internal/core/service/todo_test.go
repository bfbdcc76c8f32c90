package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"ziluri/internal/adapter/cache/memory"
	"ziluri/internal/adapter/database/sqlite/repository"
	"ziluri/internal/core/calendar"
	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/internal/core/schedule"
	"ziluri/internal/core/service"
	. "ziluri/pkg/test"
	"ziluri/pkg/test/factory"
)

type TodoServiceTestSuite struct {
	suite.Suite
	db       *TestSetup[port.TodoService]
	svc      *service.TodoService
	users    *service.UserService
	userRepo port.UserRepository
	calendar *service.CalendarService
	clock    *dates.FixedClock
	bucket   *dates.Bucket
}

func (s *TodoServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.bucket = dates.NewBucket(time.UTC)
	s.clock = &dates.FixedClock{
		Time:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		Bucket: s.bucket,
	}

	resolver := schedule.NewResolver(s.bucket)
	grid := calendar.NewGridBuilder(s.bucket)
	cache := memory.NewRepository()

	groupRepo := repository.NewGroupRepository(db, nil)
	itemRepo := repository.NewItemRepository(db, nil)
	userRepo := repository.NewUserRepository(db, nil)
	s.userRepo = userRepo

	s.users = service.NewUserService(userRepo, s.bucket, s.clock)
	s.svc = service.NewTodoService(groupRepo, itemRepo, s.users, resolver, s.bucket, s.clock, cache, nil)
	s.calendar = service.NewCalendarService(itemRepo, resolver, grid, s.bucket, s.clock, cache)

	var svc port.TodoService = s.svc
	s.db = SetupTest(s.T(), db, &svc)
}

func (s *TodoServiceTestSuite) TearDownTest() {
	TeardownTest(s.T(), s.db)
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) createItem(custom func(*domain.TodoItem)) domain.TodoItem {
	ctx := context.Background()

	group, err := s.svc.CreateGroup(ctx, "default")
	assert.NoError(s.T(), err)

	item := factory.NewTodo[domain.TodoItem](map[string]any{
		"Content":  "task",
		"Priority": int(domain.PriorityMedium),
	})
	item.GroupID = group.ID
	item.Date = s.clock.Now()

	if custom != nil {
		custom(&item)
	}

	saved, err := s.svc.CreateItem(ctx, item)
	assert.NoError(s.T(), err)

	return saved
}

func (s *TodoServiceTestSuite) TestService_CreateGroup_AppendsAtEnd() {
	ctx := context.Background()

	first, err := s.svc.CreateGroup(ctx, "first")
	assert.NoError(s.T(), err)
	second, err := s.svc.CreateGroup(ctx, "second")
	assert.NoError(s.T(), err)

	Expect(first.Order).To(Equal(0))
	Expect(second.Order).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestService_RenameGroup() {
	ctx := context.Background()

	group, _ := s.svc.CreateGroup(ctx, "before")

	renamed, err := s.svc.RenameGroup(ctx, group.ID, "after")

	assert.NoError(s.T(), err)
	Expect(renamed.Name).To(Equal("after"))
}

func (s *TodoServiceTestSuite) TestService_CreateItem_Defaults() {
	item := s.createItem(func(i *domain.TodoItem) {
		i.Date = time.Date(2025, 6, 10, 18, 45, 0, 0, time.UTC)
		i.RequiredCompletions = 0
		i.CurrentCompletions = 7
		i.Completed = true
	})

	Expect(item.Date).To(Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	Expect(item.RequiredCompletions).To(Equal(1))
	Expect(item.CurrentCompletions).To(Equal(0))
	Expect(item.Completed).To(BeFalse())
	Expect(item.Order).To(Equal(0))
}

func (s *TodoServiceTestSuite) TestService_CreateItem_UnknownGroup() {
	_, err := s.svc.CreateItem(context.Background(), domain.TodoItem{
		GroupID: 999,
		Content: "orphan",
		Date:    s.clock.Now(),
	})

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *TodoServiceTestSuite) TestService_Complete_GrantsProgression() {
	ctx := context.Background()

	item := s.createItem(func(i *domain.TodoItem) {
		i.Priority = int(domain.PriorityHigh)
	})

	outcome, err := s.svc.Complete(ctx, item.ID)

	assert.NoError(s.T(), err)
	Expect(outcome.BecameDone).To(BeTrue())
	Expect(outcome.Item.Completed).To(BeTrue())
	Expect(outcome.User.Exp).To(Equal(20))
	Expect(outcome.User.TotalCompleted).To(Equal(1))
	Expect(outcome.User.ContinuousDays).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestService_Complete_PartialGrantsNothing() {
	ctx := context.Background()

	item := s.createItem(func(i *domain.TodoItem) {
		i.RequiredCompletions = 3
	})

	outcome, err := s.svc.Complete(ctx, item.ID)

	assert.NoError(s.T(), err)
	Expect(outcome.BecameDone).To(BeFalse())
	Expect(outcome.Item.CurrentCompletions).To(Equal(1))

	user, err := s.users.EnsureGuest(ctx)
	assert.NoError(s.T(), err)
	Expect(user.Exp).To(Equal(0))
	Expect(user.TotalCompleted).To(Equal(0))
}

func (s *TodoServiceTestSuite) TestService_Complete_LevelUpOnThreshold() {
	ctx := context.Background()

	user, err := s.users.EnsureGuest(ctx)
	assert.NoError(s.T(), err)

	user.Exp = 90
	_, err = s.userRepo.Update(ctx, user)
	assert.NoError(s.T(), err)

	// 90 stored, +10 medium reward crosses the level-1 requirement of 100.
	outcome, err := s.svc.Complete(ctx, s.createItem(nil).ID)

	assert.NoError(s.T(), err)
	Expect(outcome.LeveledUp).To(BeTrue())
	Expect(outcome.User.Level).To(Equal(2))
	Expect(outcome.User.Exp).To(Equal(100))
}

func (s *TodoServiceTestSuite) TestService_Uncomplete_KeepsGrantedExp() {
	ctx := context.Background()

	item := s.createItem(nil)

	outcome, err := s.svc.Complete(ctx, item.ID)
	assert.NoError(s.T(), err)
	Expect(outcome.User.Exp).To(Equal(10))

	reverted, err := s.svc.Uncomplete(ctx, item.ID)
	assert.NoError(s.T(), err)
	Expect(reverted.Completed).To(BeFalse())
	Expect(reverted.CurrentCompletions).To(Equal(0))

	user, _ := s.users.CurrentUser(ctx)
	Expect(user.Exp).To(Equal(10))
}

func (s *TodoServiceTestSuite) TestService_GroupsWithItemsForDate() {
	ctx := context.Background()

	item := s.createItem(nil)

	grouped, err := s.svc.GroupsWithItemsForDate(ctx, s.clock.Now())

	assert.NoError(s.T(), err)
	assert.Len(s.T(), grouped, 1)
	Expect(grouped[0].Items[0].ID).To(Equal(item.ID))
}

func (s *TodoServiceTestSuite) TestService_ItemsForDate_ExcludesOtherDays() {
	ctx := context.Background()

	s.createItem(func(i *domain.TodoItem) {
		i.Date = s.clock.Now().AddDate(0, 0, 5)
	})

	items, err := s.svc.ItemsForDate(ctx, s.clock.Now())

	assert.NoError(s.T(), err)
	assert.Empty(s.T(), items)
}

func (s *TodoServiceTestSuite) TestService_DeleteItem() {
	ctx := context.Background()

	item := s.createItem(nil)

	assert.NoError(s.T(), s.svc.DeleteItem(ctx, item.ID))

	_, err := s.svc.GetItem(ctx, item.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *TodoServiceTestSuite) TestService_Calendar_DaySummary() {
	ctx := context.Background()

	item := s.createItem(nil)
	s.createItem(func(i *domain.TodoItem) {
		i.GroupID = item.GroupID
	})

	_, err := s.svc.Complete(ctx, item.ID)
	assert.NoError(s.T(), err)

	summary, err := s.calendar.DaySummary(ctx, s.clock.Now())

	assert.NoError(s.T(), err)
	Expect(summary.TotalCount).To(Equal(2))
	Expect(summary.CompletedCount).To(Equal(1))
	Expect(summary.InProgressCount).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestService_Calendar_MonthGridIndicators() {
	ctx := context.Background()

	s.createItem(nil)

	days, err := s.calendar.MonthGrid(ctx, 2025, 6, s.clock.Now())

	assert.NoError(s.T(), err)
	assert.Len(s.T(), days, calendar.MonthGridSize)

	// June 2025 opens on a Sunday; the 10th sits at index 9.
	Expect(days[9].HasTodos).To(BeTrue())
	Expect(days[9].IsToday).To(BeTrue())
	Expect(days[9].IsSelected).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestService_Calendar_WeekGrid() {
	ctx := context.Background()

	s.createItem(nil)

	days, err := s.calendar.WeekGrid(ctx, s.clock.Now())

	assert.NoError(s.T(), err)
	assert.Len(s.T(), days, calendar.WeekGridSize)
	Expect(days[2].HasTodos).To(BeTrue())
}
