package port

import (
	"context"

	"ziluri/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	// Current returns the single consumed user row, or ErrNotFound when
	// no user exists yet.
	Current(ctx context.Context) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// Profile is the read model behind the profile screen: the user plus the
// derived leveling figures.
type Profile struct {
	User           domain.User
	LevelTitle     string
	LevelProgress  float64
	ExpToNextLevel int
	ExpForLevel    int
}

type UserService interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	// EnsureGuest returns the current user, creating a guest one when the
	// installation has none.
	EnsureGuest(ctx context.Context) (domain.User, error)
	Profile(ctx context.Context) (Profile, error)
	// OnItemCompleted applies one completion transition: completed total,
	// experience by priority, a single level-up check, streak roll.
	OnItemCompleted(ctx context.Context, priority domain.Priority) (domain.User, bool, error)
	Logout(ctx context.Context) error
}
