package progression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
	"ziluri/internal/core/progression"
)

func TestExpReward(t *testing.T) {
	tests := []struct {
		priority domain.Priority
		want     int
	}{
		{domain.PriorityLow, 5},
		{domain.PriorityMedium, 10},
		{domain.PriorityHigh, 20},
		{domain.PriorityUrgent, 30},
		{domain.Priority(99), 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, progression.ExpReward(tt.priority))
	}
}

func TestRequiredFor_Curve(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 100},
		{5, 500},
		{6, 700},
		{10, 1500},
		{11, 1800},
		{20, 4500},
		{21, 5000},
		{50, 19500},
		{51, 20500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, progression.RequiredFor(tt.level), "level %d", tt.level)
	}
}

func TestAddExp_LevelUp(t *testing.T) {
	user := domain.User{Level: 1, Exp: 90}

	user, leveledUp := progression.AddExp(user, 20)

	assert.True(t, leveledUp)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, 110, user.Exp)
}

func TestAddExp_BelowThreshold(t *testing.T) {
	user := domain.User{Level: 1, Exp: 50}

	user, leveledUp := progression.AddExp(user, 30)

	assert.False(t, leveledUp)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 80, user.Exp)
}

func TestAddExp_SingleLevelPerCall(t *testing.T) {
	user := domain.User{Level: 1, Exp: 0}

	user, leveledUp := progression.AddExp(user, 1000)

	assert.True(t, leveledUp)
	assert.Equal(t, 2, user.Level)

	user, leveledUp = progression.AddExp(user, 0)
	assert.True(t, leveledUp)
	assert.Equal(t, 3, user.Level)
}

func TestLevelProgress_Clamped(t *testing.T) {
	assert.Equal(t, 0.0, progression.LevelProgress(domain.User{Level: 2, Exp: 50}))
	assert.Equal(t, 0.5, progression.LevelProgress(domain.User{Level: 2, Exp: 150}))
	assert.Equal(t, 1.0, progression.LevelProgress(domain.User{Level: 2, Exp: 999}))
}

func TestExpToNextLevel(t *testing.T) {
	assert.Equal(t, 10, progression.ExpToNextLevel(domain.User{Level: 1, Exp: 90}))
	assert.Equal(t, 0, progression.ExpToNextLevel(domain.User{Level: 1, Exp: 150}))
}

func TestLevelTitle(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "novice"},
		{4, "novice"},
		{5, "apprentice"},
		{9, "apprentice"},
		{10, "achiever"},
		{19, "achiever"},
		{20, "expert"},
		{34, "expert"},
		{35, "master"},
		{49, "master"},
		{50, "grandmaster"},
		{74, "grandmaster"},
		{75, "legend"},
		{200, "legend"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, progression.LevelTitle(tt.level), "level %d", tt.level)
	}
}

func TestUpdateStreak(t *testing.T) {
	bucket := dates.NewBucket(time.UTC)

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("consecutive day extends the streak", func(t *testing.T) {
		user := domain.User{ContinuousDays: 3, LastActiveDate: day(9)}

		user = progression.UpdateStreak(bucket, user, day(10))

		assert.Equal(t, 4, user.ContinuousDays)
		assert.Equal(t, day(10), user.LastActiveDate)
	})

	t.Run("same day keeps the streak", func(t *testing.T) {
		user := domain.User{ContinuousDays: 3, LastActiveDate: day(10)}

		user = progression.UpdateStreak(bucket, user, day(10).Add(8*time.Hour))

		assert.Equal(t, 3, user.ContinuousDays)
	})

	t.Run("first completion on the creation day opens the streak", func(t *testing.T) {
		user := domain.User{ContinuousDays: 0, LastActiveDate: day(10)}

		user = progression.UpdateStreak(bucket, user, day(10))

		assert.Equal(t, 1, user.ContinuousDays)
	})

	t.Run("gap resets the streak to one", func(t *testing.T) {
		user := domain.User{ContinuousDays: 7, LastActiveDate: day(5)}

		user = progression.UpdateStreak(bucket, user, day(10))

		assert.Equal(t, 1, user.ContinuousDays)
		assert.Equal(t, day(10), user.LastActiveDate)
	})
}
