package factory

import (
	fab "github.com/Goldziher/fabricator"
)

func NewGroup[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	customData = withDefaults(customData, map[string]any{
		"ID":    int64(0),
		"Order": 0,
	})

	return instance.Build(customData...)
}
