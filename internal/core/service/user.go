package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/internal/core/progression"
)

type UserService struct {
	repo  port.UserRepository
	dates *dates.Bucket
	clock port.Clock
}

func NewUserService(repo port.UserRepository, bucket *dates.Bucket, clock port.Clock) *UserService {
	return &UserService{
		repo:  repo,
		dates: bucket,
		clock: clock,
	}
}

func (us *UserService) CurrentUser(ctx context.Context) (domain.User, error) {
	return us.repo.Current(ctx)
}

// EnsureGuest returns the installation's user, creating a guest one the
// first time anything asks for it.
func (us *UserService) EnsureGuest(ctx context.Context) (domain.User, error) {
	user, err := us.repo.Current(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	now := us.clock.Now()

	guest := domain.User{
		ID:             fmt.Sprintf("guest_%d", now.UnixMilli()),
		Nickname:       "guest",
		LoginType:      domain.LoginGuest,
		Level:          1,
		Exp:            0,
		LastActiveDate: us.clock.Today(),
		CreatedAt:      now,
	}

	saved, err := us.repo.Create(ctx, guest)
	if err != nil {
		slog.Error("Guest user create failed", "error", err)
		return domain.User{}, err
	}

	return saved, nil
}

func (us *UserService) Profile(ctx context.Context) (port.Profile, error) {
	user, err := us.repo.Current(ctx)
	if err != nil {
		return port.Profile{}, err
	}

	return port.Profile{
		User:           user,
		LevelTitle:     progression.LevelTitle(user.Level),
		LevelProgress:  progression.LevelProgress(user),
		ExpToNextLevel: progression.ExpToNextLevel(user),
		ExpForLevel:    progression.RequiredFor(user.Level),
	}, nil
}

// OnItemCompleted reacts to one completion transition: completed total,
// experience by priority with a single level-up check, streak roll against
// today. Read-modify-write on the latest persisted user state.
func (us *UserService) OnItemCompleted(ctx context.Context, priority domain.Priority) (domain.User, bool, error) {
	user, err := us.EnsureGuest(ctx)
	if err != nil {
		return domain.User{}, false, err
	}

	today := us.clock.Today()

	user.TotalCompleted++
	user = progression.UpdateStreak(us.dates, user, today)

	user, leveledUp := progression.AddExp(user, progression.ExpReward(priority))

	saved, err := us.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, false, err
	}

	if leveledUp {
		slog.Info("Level up", "user_id", saved.ID, "level", saved.Level)
	}

	return saved, leveledUp, nil
}

func (us *UserService) Logout(ctx context.Context) error {
	return us.repo.DeleteAll(ctx)
}
