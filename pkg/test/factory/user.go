package factory

import (
	fab "github.com/Goldziher/fabricator"
)

// NewUser builds a progression user, defaulting to a fresh level one guest.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	customData = withDefaults(customData, map[string]any{
		"Level":          1,
		"Exp":            0,
		"TotalCompleted": 0,
		"ContinuousDays": 0,
	})

	return instance.Build(customData...)
}
