package factory

import (
	fab "github.com/Goldziher/fabricator"
)

func NewMemo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	customData = withDefaults(customData, map[string]any{
		"ID":     int64(0),
		"Pinned": false,
		"Color":  "#FFFFFF",
	})

	return instance.Build(customData...)
}
