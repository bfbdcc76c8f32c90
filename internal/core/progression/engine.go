// Package progression computes user leveling: the per-priority experience
// reward, the required-experience curve, level-up detection and streak
// continuity. Pure transformations returning new user values.
package progression

import (
	"time"

	"ziluri/internal/core/dates"
	"ziluri/internal/core/domain"
)

// ExpReward is the experience granted when an item of the given priority
// transitions into Done.
func ExpReward(p domain.Priority) int {
	switch p {
	case domain.PriorityLow:
		return 5
	case domain.PriorityMedium:
		return 10
	case domain.PriorityHigh:
		return 20
	case domain.PriorityUrgent:
		return 30
	default:
		return 10
	}
}

// RequiredFor returns the total experience needed to leave level. The
// curve is piecewise linear with steeper segments at higher tiers;
// RequiredFor(0) is 0 so level-progress math has a floor.
func RequiredFor(level int) int {
	switch {
	case level <= 0:
		return 0
	case level <= 5:
		return level * 100
	case level <= 10:
		return 500 + (level-5)*200
	case level <= 20:
		return 1500 + (level-10)*300
	case level <= 50:
		return 4500 + (level-20)*500
	default:
		return 19500 + (level-50)*1000
	}
}

// AddExp grants experience and advances at most one level per call, even
// when the new total would satisfy further levels. A later call repeats
// the check, so cascades resolve one completion at a time.
func AddExp(user domain.User, amount int) (domain.User, bool) {
	user.Exp += amount

	if user.Exp >= RequiredFor(user.Level) {
		user.Level++
		return user, true
	}

	return user, false
}

// LevelProgress is the filled fraction of the current level bar, clamped
// to [0, 1] whatever the stored experience.
func LevelProgress(user domain.User) float64 {
	floor := RequiredFor(user.Level - 1)
	ceil := RequiredFor(user.Level)

	if ceil <= floor {
		return 1
	}

	progress := float64(user.Exp-floor) / float64(ceil-floor)

	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// ExpToNextLevel returns the experience still missing for the next level,
// never negative.
func ExpToNextLevel(user domain.User) int {
	missing := RequiredFor(user.Level) - user.Exp
	if missing < 0 {
		return 0
	}
	return missing
}

// LevelTitle maps a level to its display title.
func LevelTitle(level int) string {
	switch {
	case level < 5:
		return "novice"
	case level < 10:
		return "apprentice"
	case level < 20:
		return "achiever"
	case level < 35:
		return "expert"
	case level < 50:
		return "master"
	case level < 75:
		return "grandmaster"
	default:
		return "legend"
	}
}

// UpdateStreak rolls the continuity counter for an activity happening on
// today: +1 on a consecutive day, unchanged within the same day, reset to
// 1 after a gap. LastActiveDate always moves to today.
func UpdateStreak(bucket *dates.Bucket, user domain.User, today time.Time) domain.User {
	switch {
	case bucket.IsConsecutiveDay(user.LastActiveDate, today):
		user.ContinuousDays++
	case bucket.IsSameDay(user.LastActiveDate, today):
		// same-day activity keeps the streak, except a fresh user whose
		// first completion opens it
		if user.ContinuousDays == 0 {
			user.ContinuousDays = 1
		}
	default:
		user.ContinuousDays = 1
	}

	user.LastActiveDate = bucket.DayStart(today)

	return user
}
